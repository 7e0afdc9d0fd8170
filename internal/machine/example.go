package machine

const (
	// ExampleOrigin is where the built-in program is loaded and started.
	ExampleOrigin = 0x8000
	// ExampleResultAddr holds 10*3 once the example program finishes.
	ExampleResultAddr = 0x0002
)

// example multiplies 10 by 3 with repeated addition, leaves the product at
// $0002 and in A, then spins on a JMP to itself.
var example = []byte{
	0xa2, 0x0a, // $8000 LDX #$0A
	0x8e, 0x00, 0x00, // $8002 STX $0000
	0xa2, 0x03, // $8005 LDX #$03
	0x8e, 0x01, 0x00, // $8007 STX $0001
	0xac, 0x00, 0x00, // $800A LDY $0000
	0xa9, 0x00, // $800D LDA #$00
	0x18,             // $800F CLC
	0x6d, 0x01, 0x00, // $8010 ADC $0001
	0x88,       // $8013 DEY
	0xd0, 0xfa, // $8014 BNE $8010
	0x8d, 0x02, 0x00, // $8016 STA $0002
	0xea,             // $8019 NOP
	0xea,             // $801A NOP
	0xea,             // $801B NOP
	0xad, 0x02, 0x00, // $801C LDA $0002
	0x4c, 0x1f, 0x80, // $801F JMP $801F
}

// Example returns a copy of the built-in program image.
func Example() []byte {
	img := make([]byte, len(example))
	copy(img, example)
	return img
}
