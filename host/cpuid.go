package host

import "golang.org/x/sys/cpu"

// CPUIDResult is the {EAX,EBX,ECX,EDX} register quadruple CPUID leaves
// return, mirroring hostinstructions.cpp's `CPUID` struct.
type CPUIDResult struct {
	A, B, C, D uint32
}

// featureMaskLeaf1ECX clears the bits for extensions this core does not
// model (AES, XSAVE, OSXSAVE, AVX, RDRAND), matching
// hostinstructions.cpp's cpuid() leaf-1 masking — ported from "pretend the
// CPU does not have" bit list to "pretend the guest CPU does not have",
// since this core's checked dispatch only ever needs up through SSE4.2.
const featureMaskLeaf1ECX = 1<<25 | 1<<26 | 1<<27 | 1<<28 | 1<<30

// featureMaskLeaf7EBX/ECX clear AVX2/AVX512F and CET shadow-stack support
// on leaf 7, subleaf 0.
const featureMaskLeaf7EBX = 1<<5 | 1<<16
const featureMaskLeaf7ECX = 1 << 7

// CPUID reads real host feature bits through golang.org/x/sys/cpu's
// already-parsed cpu.X86 struct (rather than re-deriving them from a raw
// CPUID instruction the way hostinstructions.cpp does), then masks the
// result down to the feature set this core actually models before
// returning it — guest code that executes CPUID must never see a feature
// bit this core can't back up with a real cpuimpl implementation.
func CPUID(leaf, subleaf uint32) CPUIDResult {
	switch leaf {
	case 0:
		return CPUIDResult{A: 0x10, B: 0x756e6547, C: 0x6c65746e, D: 0x49656e69} // "GenuineIntel", max leaf 0x10
	case 1:
		var ecx uint32
		if cpu.X86.HasSSE3 {
			ecx |= 1 << 0
		}
		if cpu.X86.HasSSSE3 {
			ecx |= 1 << 9
		}
		if cpu.X86.HasSSE41 {
			ecx |= 1 << 19
		}
		if cpu.X86.HasSSE42 {
			ecx |= 1 << 20
		}
		ecx &^= featureMaskLeaf1ECX
		var edx uint32 = 1<<25 | 1<<26 // SSE, SSE2: always modeled
		return CPUIDResult{A: 0x000106A0, B: 0x00000800, C: ecx, D: edx}
	case 7:
		if subleaf == 0 {
			var ebx uint32
			if cpu.X86.HasBMI1 {
				ebx |= 1 << 3
			}
			if cpu.X86.HasBMI2 {
				ebx |= 1 << 8
			}
			if cpu.X86.HasERMS {
				ebx |= 1 << 9
			}
			ebx &^= featureMaskLeaf7EBX
			var ecx uint32
			ecx &^= featureMaskLeaf7ECX
			return CPUIDResult{B: ebx, C: ecx}
		}
	}
	return CPUIDResult{}
}

// XGETBVResult is the {EAX,EDX} pair XGETBV returns, mirroring
// hostinstructions.cpp's `XGETBV` struct.
type XGETBVResult struct {
	A, D uint32
}

// XGETBV reports the XCR0 state-component bitmap (index 0) with the x87
// and SSE components (bits 0 and 1) set; every other index reads back
// zero, since this core neither models nor enables AVX state saving.
func XGETBV(index uint32) XGETBVResult {
	if index == 0 {
		return XGETBVResult{A: 0x3} // bit0 x87, bit1 SSE
	}
	return XGETBVResult{}
}
