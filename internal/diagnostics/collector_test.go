package diagnostics

import (
	"testing"

	"github.com/restbound/restbound/internal/models"
)

func TestCollector_RecordsInCallOrder(t *testing.T) {
	collector := NewCollector()

	collector.ReportEventNotAllowed(models.EventModel{Name: "Changed"})
	collector.ReportHeaderOnInterfaceMustHaveValue(models.HeaderAttribute{Name: "X-A"})
	collector.ReportEventNotAllowed(models.EventModel{Name: "Removed"})

	recorded := collector.Diagnostics()
	if len(recorded) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(recorded))
	}

	expected := []Code{EventNotAllowed, HeaderOnInterfaceMustHaveValue, EventNotAllowed}
	for i, code := range expected {
		if recorded[i].Code != code {
			t.Errorf("diagnostic %d: got %s, expected %s", i, recorded[i].Code, code)
		}
	}
}

func TestCollector_HasErrors(t *testing.T) {
	collector := NewCollector()
	if collector.HasErrors() {
		t.Error("empty collector must not report errors")
	}

	collector.ReportEventNotAllowed(models.EventModel{Name: "Changed"})
	if !collector.HasErrors() {
		t.Error("collector with a finding must report errors")
	}
}

func TestCollector_ByCode(t *testing.T) {
	collector := NewCollector()
	collector.ReportEventNotAllowed(models.EventModel{Name: "Changed"})
	collector.ReportEventNotAllowed(models.EventModel{Name: "Removed"})

	if got := len(collector.ByCode(EventNotAllowed)); got != 2 {
		t.Errorf("ByCode(EventNotAllowed) = %d, expected 2", got)
	}
	if collector.HasCode(MultipleBodyParameters) {
		t.Error("unexpected code reported")
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:     EventNotAllowed,
		Severity: SeverityError,
		Message:  "event \"Changed\" is not allowed on a client interface",
		Location: models.SourceLocation{File: "api.rbd", Line: 12},
	}

	expected := `api.rbd:12: error: event "Changed" is not allowed on a client interface [EventNotAllowed]`
	if d.String() != expected {
		t.Errorf("String() = %q, expected %q", d.String(), expected)
	}
}

func TestCode_String(t *testing.T) {
	codes := []Code{
		HeaderOnInterfaceMustHaveValue,
		DuplicateHttpRequestMessagePropertyKey,
		QueryMapParameterIsNotADictionary,
	}
	expected := []string{
		"HeaderOnInterfaceMustHaveValue",
		"DuplicateHttpRequestMessagePropertyKey",
		"QueryMapParameterIsNotADictionary",
	}
	for i, code := range codes {
		if code.String() != expected[i] {
			t.Errorf("Code(%d).String() = %q, expected %q", int(code), code.String(), expected[i])
		}
	}
}
