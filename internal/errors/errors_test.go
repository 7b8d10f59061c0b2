package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapKeepsCode(t *testing.T) {
	base := Transport("connection refused", stderrors.New("dial tcp"))
	wrapped := Wrap(base, "failed to fetch inventario")

	if GetCode(wrapped) != CodeTransport {
		t.Errorf("Expected code %s, got %s", CodeTransport, GetCode(wrapped))
	}
	if !IsTransport(wrapped) {
		t.Error("Expected IsTransport to see through Wrap")
	}
	if wrapped.Error() != "failed to fetch inventario: connection refused: dial tcp" {
		t.Errorf("Unexpected message %q", wrapped.Error())
	}
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("Expected %s, got %s", CodeInternalError, GetCode(wrapped))
	}
	if Wrap(nil, "x") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("no such report"))
	if !IsNotFound(err) {
		t.Error("Expected NOT_FOUND code")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"empty result", EmptyResult("No hay ventas registradas"), "No hay ventas registradas"},
		{"wrapped", Wrap(EmptyResult("Sin datos"), "reportes/ventas"), "Sin datos"},
		{"foreign", stderrors.New("eof"), "eof"},
		{"nil", nil, ""},
	}

	for _, test := range tests {
		if got := Message(test.err); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}
