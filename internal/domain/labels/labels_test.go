package labels

import (
	"bytes"
	"testing"
)

func TestGenerateProducesPDF(t *testing.T) {
	entries := []Entry{
		{Matricula: 1000, Nome: "Ana Souza"},
		{Matricula: 1001, Nome: "Bruno Lima"},
	}

	pdf, err := Generate(entries)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", pdf[:min(8, len(pdf))])
	}
}

func TestGenerateMultiplePages(t *testing.T) {
	entries := make([]Entry, 0, 25)
	for i := int64(0); i < 25; i++ {
		entries = append(entries, Entry{Matricula: 1000 + i, Nome: "Colaborador"})
	}

	single, err := Generate(entries[:1])
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	many, err := Generate(entries)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(many) <= len(single) {
		t.Fatalf("25 labels should render more content than 1: %d <= %d", len(many), len(single))
	}
}

func TestGenerateEmpty(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Fatal("expected an error for an empty entry list")
	}
}
