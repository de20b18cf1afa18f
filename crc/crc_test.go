// SPDX-License-Identifier: GPL-2.0-or-later
package crc

import "testing"

func TestChecksum(t *testing.T) {
	// CCITT-FALSE reference value for "123456789"
	if got := Update([]byte("123456789")); got != 0x29b1 {
		t.Errorf("Update(123456789) = %#x, want 0x29b1", got)
	}
	if Checksum("maps/base1.bsp") != Checksum("maps/base1.bsp") {
		t.Error("Checksum is not stable")
	}
	if Checksum("maps/base1.bsp") == Checksum("maps/base2.bsp") {
		t.Error("distinct names should not collide in this test set")
	}
}
