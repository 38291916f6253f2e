// Package trace renders CHIP-8 instruction words as readable mnemonics for
// debug logging. It identifies instructions through the retrogolib CHIP-8
// opcode tables and formats parameters in conventional assembly notation.
package trace

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble formats a raw instruction word as a mnemonic with parameters,
// for example "jp $0ABC" or "ld V1, $0A". Words that match no instruction
// format as a raw data word.
func Disassemble(opcode uint16) string {
	ins := lookupInstruction(opcode)
	if ins == nil {
		return fmt.Sprintf(".dw $%04X", opcode)
	}

	if params := formatParams(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// lookupInstruction finds the instruction matching the opcode in the mask
// tables, indexed by the leading nibble.
func lookupInstruction(opcode uint16) *chip8.Instruction {
	firstNibble := opcode >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// formatParams formats the parameters of an instruction.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return "" // no parameters
	case chip8.Jp.Name:
		return formatJump(opcode)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompare(opcode)
	case chip8.Ld.Name:
		return formatLoad(opcode)
	case chip8.Add.Name:
		return formatAdd(opcode)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.Shr.Name, chip8.Shl.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	case chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	}
	return ""
}

// formatJump formats the two jump forms (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats the comparison forms:
//
//	3XNN: SE Vx, byte
//	4XNN: SNE Vx, byte
//	5XY0: SE Vx, Vy
//	9XY0: SNE Vx, Vy
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// formatLoad formats the load forms of the 6xxx, 8xy0 and Annn families as
// well as the timer, keypad, font, BCD and bulk transfer loads of the Fxxx
// family.
func formatLoad(opcode uint16) string {
	x := registerX(opcode)

	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	}

	switch opcode & 0xF0FF {
	case 0xF007:
		return fmt.Sprintf("V%X, DT", x)
	case 0xF00A:
		return fmt.Sprintf("V%X, K", x)
	case 0xF015:
		return fmt.Sprintf("DT, V%X", x)
	case 0xF018:
		return fmt.Sprintf("ST, V%X", x)
	case 0xF029:
		return fmt.Sprintf("F, V%X", x)
	case 0xF033:
		return fmt.Sprintf("B, V%X", x)
	case 0xF055:
		return fmt.Sprintf("[I], V%X", x)
	case 0xF065:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats the add forms (ADD Vx, byte / ADD Vx, Vy / ADD I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch {
	case opcode&0xF000 == 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case opcode&0xF000 == 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case opcode&0xF0FF == 0xF01E:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// registerX extracts the X register nibble from an opcode.
func registerX(opcode uint16) uint16 {
	return opcode & 0x0F00 >> 8
}

// registerY extracts the Y register nibble from an opcode.
func registerY(opcode uint16) uint16 {
	return opcode & 0x00F0 >> 4
}
