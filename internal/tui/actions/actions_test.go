package actions

import (
	"errors"
	"testing"
)

func TestOpenLinkCmd_Fallbacks(t *testing.T) {
	var opened string
	msg := OpenLinkCmd(" https://example.com ",
		func(link string) error { opened = link; return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(LinkActionMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}
	if opened != "https://example.com" {
		t.Fatalf("expected trimmed link, got %q", opened)
	}

	msg = OpenLinkCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(LinkActionMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenLinkCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(LinkActionErrorMsg); !ok {
		t.Fatalf("expected LinkActionErrorMsg, got %T", msg)
	}
}

func TestOpenLinkCmd_RejectsInvalidLink(t *testing.T) {
	called := false
	msg := OpenLinkCmd("mailto:someone@example.com",
		func(string) error { called = true; return nil },
		func(string) error { called = true; return nil },
	)()
	errMsg, ok := msg.(LinkActionErrorMsg)
	if !ok {
		t.Fatalf("expected LinkActionErrorMsg, got %T", msg)
	}
	if called {
		t.Fatal("expected no open or copy attempt for an invalid link")
	}
	if errMsg.Err == nil {
		t.Fatal("expected an error")
	}
}

func TestCopyLinkCmd(t *testing.T) {
	msg := CopyLinkCmd("https://example.com", func(string) error { return nil })()
	if got, ok := msg.(LinkActionMsg); !ok || got.Status != "Link copied to clipboard" {
		t.Fatalf("expected LinkActionMsg, got %T %+v", msg, msg)
	}
	msg = CopyLinkCmd("https://example.com", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(LinkActionErrorMsg); !ok {
		t.Fatalf("expected LinkActionErrorMsg, got %T", msg)
	}
	msg = CopyLinkCmd("", func(string) error { return nil })()
	if _, ok := msg.(LinkActionErrorMsg); !ok {
		t.Fatalf("expected LinkActionErrorMsg for empty link, got %T", msg)
	}
}

func TestClearStatusCmd(t *testing.T) {
	if ClearStatusCmd(3, 0) == nil {
		t.Fatal("expected a command")
	}
}
