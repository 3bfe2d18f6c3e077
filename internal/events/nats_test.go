package events

import (
	"testing"
)

func TestNATSPublisher_Subject(t *testing.T) {
	p := &NATSPublisher{prefix: "fleet"}

	tests := map[Type]string{
		Created: "fleet.created",
		Updated: "fleet.updated",
		Deleted: "fleet.deleted",
	}
	for typ, want := range tests {
		if got := p.Subject(typ); got != want {
			t.Errorf("Subject(%s) = %q, want %q", typ, got, want)
		}
	}
}

func TestNewNATSPublisher_ConnectionRefused(t *testing.T) {
	if _, err := NewNATSPublisher("nats://127.0.0.1:1", ""); err == nil {
		t.Error("NewNATSPublisher() should fail when no server is listening")
	}
}
