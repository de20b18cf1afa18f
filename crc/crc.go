// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc provides the 16bit CCITT-FALSE checksum the model registry
// uses to short-circuit name comparisons.
package crc

const (
	ccittFalse = 0x1021
	crcInitial = 0xffff
)

type table struct {
	entries [256]uint16
}

// 16bit CRC used by XMODEM
var ccittFalseTable = makeTable(ccittFalse)

func makeTable(poly uint16) *table {
	t := &table{}
	width := uint16(16)
	for i := uint16(0); i < 256; i++ {
		crc := i << (width - 8)
		for j := 0; j < 8; j++ {
			if crc&(1<<(width-1)) != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t.entries[i] = crc
	}
	return t
}

func update(crc uint16, p []byte) uint16 {
	for _, v := range p {
		crc = ccittFalseTable.entries[byte(crc>>8)^v] ^ (crc << 8)
	}
	return crc
}

func Update(p []byte) uint16 {
	return update(crcInitial, p)
}

// Checksum hashes a model name. A matching checksum is only a hint, callers
// must still compare the names themselves.
func Checksum(name string) uint16 {
	return update(crcInitial, []byte(name))
}
