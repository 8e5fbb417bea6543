package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	WriteHeader(&buf, "MITEI BANK", 10)

	want := "\n==========\nMITEI BANK\n==========\n"
	if buf.String() != want {
		t.Errorf("WriteHeader = %q, want %q", buf.String(), want)
	}
}

func TestWriteFooter(t *testing.T) {
	var buf bytes.Buffer
	WriteFooter(&buf, "done", 4)

	if !strings.Contains(buf.String(), "\n====\ndone\n====\n") {
		t.Errorf("Unexpected footer %q", buf.String())
	}
}

func TestBoxPrefix(t *testing.T) {
	if BoxPrefix(true) != "└  " || BoxPrefix(false) != "│  " {
		t.Errorf("Unexpected box prefixes %q %q", BoxPrefix(true), BoxPrefix(false))
	}
}
