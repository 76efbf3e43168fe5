package amd64

// This file contains x86_64 instruction encoders for the JIT's calling
// convention: TAPE lives in R12 (argument 1), DP lives in R13 (zeroed at
// entry), and the cell touched by every Add/Sub/Zero-check is addressed as
// [R12+R13] via a SIB byte.
//
// For details on x86-64 instruction encoding (REX prefixes, ModRM, SIB
// bytes), see: https://wiki.osdev.org/X86-64_Instruction_Encoding

// PushRbp encodes: push %rbp (55)
func PushRbp() []byte { return []byte{0x55} }

// MovRbpRsp encodes: mov %rsp, %rbp (48 89 E5)
func MovRbpRsp() []byte { return []byte{0x48, 0x89, 0xE5} }

// PopRbp encodes: pop %rbp (5D)
func PopRbp() []byte { return []byte{0x5D} }

// PushR12 encodes: push %r12 (41 54)
func PushR12() []byte { return []byte{0x41, 0x54} }

// PushR13 encodes: push %r13 (41 55)
func PushR13() []byte { return []byte{0x41, 0x55} }

// PopR13 encodes: pop %r13 (41 5D)
func PopR13() []byte { return []byte{0x41, 0x5D} }

// PopR12 encodes: pop %r12 (41 5C)
func PopR12() []byte { return []byte{0x41, 0x5C} }

// MovR12Rdi encodes: mov %rdi, %r12 (49 89 FC)
// Loads TAPE from argument 1 (rdi in the SysV calling convention).
func MovR12Rdi() []byte {
	// REX.WB (49) = REX.W + REX.B (r12 in rm)
	// 89 /r = mov r/m64, r64; ModRM 11 111 100 = reg=rdi, rm=r12
	return []byte{0x49, 0x89, 0xFC}
}

// XorR13R13 encodes: xor %r13, %r13 (4D 31 ED)
// Zeros DP.
func XorR13R13() []byte {
	return []byte{0x4D, 0x31, 0xED}
}

// XorEaxEax encodes: xor %eax, %eax (31 C0)
// Zeros the return-value register (the success sentinel).
func XorEaxEax() []byte {
	return []byte{0x31, 0xC0}
}

// TestRaxRax encodes: test %rax, %rax (48 85 C0)
func TestRaxRax() []byte {
	return []byte{0x48, 0x85, 0xC0}
}

// AddqImm32R13 encodes: add $imm32, %r13 (49 81 C5 <imm32>)
func AddqImm32R13(imm32 int32) []byte {
	buf := make([]byte, 7)
	buf[0] = 0x49
	buf[1] = 0x81
	buf[2] = 0xC5
	writeLE32(buf[3:], uint32(imm32))
	return buf
}

// SubqImm32R13 encodes: sub $imm32, %r13 (49 81 ED <imm32>)
func SubqImm32R13(imm32 int32) []byte {
	buf := make([]byte, 7)
	buf[0] = 0x49
	buf[1] = 0x81
	buf[2] = 0xED
	writeLE32(buf[3:], uint32(imm32))
	return buf
}

// AddbImm8Mem encodes: addb $imm8, (%r12,%r13,1) (43 80 44 2C 00 <imm8>)
func AddbImm8Mem(imm8 uint8) []byte {
	// 43 = REX.XB (X for r13 in SIB.index, B for r12 in SIB.base)
	// 80 /0 ib = add r/m8, imm8; ModRM 01 000 100 forces a SIB byte
	// SIB: scale=1 (00), index=r13 (101), base=r12 (100) = 2C
	return []byte{0x43, 0x80, 0x44, 0x2C, 0x00, imm8}
}

// SubbImm8Mem encodes: subb $imm8, (%r12,%r13,1) (43 80 6C 2C 00 <imm8>)
func SubbImm8Mem(imm8 uint8) []byte {
	return []byte{0x43, 0x80, 0x6C, 0x2C, 0x00, imm8}
}

// TestbMem encodes: testb $0xff, (%r12,%r13,1) (43 F6 44 2C 00 FF)
// Sets ZF from the current cell, for the loop-entry/loop-back tests.
func TestbMem() []byte {
	return []byte{0x43, 0xF6, 0x44, 0x2C, 0x00, 0xFF}
}

// MovDilMem encodes: mov (%r12,%r13,1), %dil (43 8A 7C 2C 00)
// Loads the current cell byte into DIL, the low byte of the first SysV
// argument register, ahead of a call to write_byte.
func MovDilMem() []byte {
	// REX.XB (43) enables SIB addressing and selects %dil over %bh for the
	// reg field.
	// 8A /r = mov r8, r/m8; ModRM 01 111 100 = reg=dil(7), rm=SIB
	return []byte{0x43, 0x8A, 0x7C, 0x2C, 0x00}
}

// LeaqMemToRdi encodes: lea (%r12,%r13,1), %rdi (4B 8D 7C 2C 00)
// Loads the address of the current cell into RDI, ahead of a call to
// read_byte.
func LeaqMemToRdi() []byte {
	// REX.WXB (4B) = 64-bit + SIB index/base extension
	// 8D /r = lea r64, m; ModRM 01 111 100 = reg=rdi(7), rm=SIB
	return []byte{0x4B, 0x8D, 0x7C, 0x2C, 0x00}
}

// MovabsRax encodes: movabs $imm64, %rax (48 B8 <imm64>)
// Loads an absolute host function address, captured at emission time, into
// RAX ahead of an indirect call.
func MovabsRax(imm64 uint64) []byte {
	buf := make([]byte, 10)
	buf[0] = 0x48
	buf[1] = 0xB8
	writeLE64(buf[2:], imm64)
	return buf
}

// CallRax encodes: call *%rax (FF D0)
func CallRax() []byte {
	return []byte{0xFF, 0xD0}
}

// JzRel32 encodes: jz rel32 (0F 84 <rel32>)
func JzRel32(rel32 int32) []byte {
	buf := make([]byte, 6)
	buf[0] = 0x0F
	buf[1] = 0x84
	writeLE32(buf[2:], uint32(rel32))
	return buf
}

// JnzRel32 encodes: jnz rel32 (0F 85 <rel32>)
func JnzRel32(rel32 int32) []byte {
	buf := make([]byte, 6)
	buf[0] = 0x0F
	buf[1] = 0x85
	writeLE32(buf[2:], uint32(rel32))
	return buf
}

// JmpRel32 encodes: jmp rel32 (E9 <rel32>)
func JmpRel32(rel32 int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 0xE9
	writeLE32(buf[1:], uint32(rel32))
	return buf
}

// Ret encodes: ret (C3)
func Ret() []byte {
	return []byte{0xC3}
}
