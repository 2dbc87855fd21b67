// Copyright (c) 2026 Truyen Thong. All rights reserved.
// Author: thai.dovan.mta@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dothai/truyenthong/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_ascii", "Truyen Thong", "truyen-thong"},
		{"vietnamese_diacritics", "Chặng đường vẻ vang", "chang-duong-ve-vang"},
		{"capital_d_stroke", "Điện Biên Phủ 1954", "dien-bien-phu-1954"},
		{"punctuation", "Ngày 22/12: thành lập!", "ngay-22-12-thanh-lap"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", "  xin chào  ", "xin-chao"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
