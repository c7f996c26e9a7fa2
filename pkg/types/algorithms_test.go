// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-cipher.
//
// go-cipher is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package types

import "testing"

func TestAlgorithmBlockSize(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		want      int
	}{
		{AlgorithmAES, 16},
		{AlgorithmDES, 8},
		{AlgorithmTripleDES, 8},
		{AlgorithmRC2, 8},
		{AlgorithmRC4, 1},
	}
	for _, tt := range tests {
		if got := tt.algorithm.BlockSize(); got != tt.want {
			t.Errorf("%s.BlockSize() = %d, want %d", tt.algorithm, got, tt.want)
		}
	}
}

func TestModeProperties(t *testing.T) {
	tests := []struct {
		mode          Mode
		usesIV        bool
		authenticated bool
		aligned       bool
		continuation  bool
	}{
		{ModeECB, false, false, true, false},
		{ModeCBC, true, false, true, false},
		{ModeCFB, true, false, false, false},
		{ModeOFB, true, false, false, false},
		{ModeCTR, true, false, false, false},
		{ModeGCM, true, true, false, false},
		{ModeCCM, true, true, false, false},
		{ModeStream, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := tt.mode.UsesIV(); got != tt.usesIV {
				t.Errorf("UsesIV() = %v, want %v", got, tt.usesIV)
			}
			if got := tt.mode.IsAuthenticated(); got != tt.authenticated {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.authenticated)
			}
			if got := tt.mode.RequiresAlignment(); got != tt.aligned {
				t.Errorf("RequiresAlignment() = %v, want %v", got, tt.aligned)
			}
			if got := tt.mode.SupportsContinuation(); got != tt.continuation {
				t.Errorf("SupportsContinuation() = %v, want %v", got, tt.continuation)
			}
		})
	}
}

func TestModeIVSize(t *testing.T) {
	tests := []struct {
		mode      Mode
		algorithm Algorithm
		want      int
	}{
		{ModeCBC, AlgorithmAES, 16},
		{ModeCBC, AlgorithmDES, 8},
		{ModeCTR, AlgorithmTripleDES, 8},
		{ModeGCM, AlgorithmAES, 12},
		{ModeCCM, AlgorithmAES, 12},
		{ModeECB, AlgorithmAES, 0},
		{ModeStream, AlgorithmRC4, 0},
	}
	for _, tt := range tests {
		if got := tt.mode.IVSize(tt.algorithm); got != tt.want {
			t.Errorf("%s.IVSize(%s) = %d, want %d", tt.mode, tt.algorithm, got, tt.want)
		}
	}
}

func TestPaddingLabel(t *testing.T) {
	tests := []struct {
		padding Padding
		want    string
	}{
		{PaddingNone, "NoPadding"},
		{PaddingPKCS7, "PKCS7Padding"},
		{PaddingZeros, "NoPadding"},
	}
	for _, tt := range tests {
		if got := tt.padding.Label(); got != tt.want {
			t.Errorf("%s.Label() = %s, want %s", tt.padding, got, tt.want)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input string
		want  Algorithm
	}{
		{"aes", AlgorithmAES},
		{"AES", AlgorithmAES},
		{" aes ", AlgorithmAES},
		{"desede", AlgorithmTripleDES},
		{"3des", AlgorithmTripleDES},
		{"des3", AlgorithmTripleDES},
		{"rc4", AlgorithmRC4},
		{"arcfour", AlgorithmRC4},
		{"blowfish", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseAlgorithm(tt.input); got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"cbc", ModeCBC},
		{"GCM", ModeGCM},
		{"stream", ModeStream},
		{"none", ModeStream},
		{"xts", ""},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParsePadding(t *testing.T) {
	tests := []struct {
		input string
		want  Padding
	}{
		{"pkcs7", PaddingPKCS7},
		{"pkcs5", PaddingPKCS7},
		{"PKCS7Padding", PaddingPKCS7},
		{"none", PaddingNone},
		{"nopadding", PaddingNone},
		{"zeros", PaddingZeros},
		{"iso10126", ""},
	}
	for _, tt := range tests {
		if got := ParsePadding(tt.input); got != tt.want {
			t.Errorf("ParsePadding(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEquals(t *testing.T) {
	if !AlgorithmAES.Equals("aes") {
		t.Error("AlgorithmAES.Equals(\"aes\") = false, want true")
	}
	if !ModeGCM.Equals("gcm") {
		t.Error("ModeGCM.Equals(\"gcm\") = false, want true")
	}
	if PaddingPKCS7.Equals("zeros") {
		t.Error("PaddingPKCS7.Equals(\"zeros\") = true, want false")
	}
}
