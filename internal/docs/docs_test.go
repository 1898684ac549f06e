package docs

import "testing"

func TestTopicsAndGet(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("no embedded topics")
	}
	for _, topic := range topics {
		body, ok := Get(topic)
		if !ok || body == "" {
			t.Fatalf("Get(%q) returned empty", topic)
		}
	}
	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("unknown topic should not resolve")
	}
	if body, ok := Get("  Zones "); !ok || body == "" {
		t.Fatalf("topic lookup should trim and lowercase")
	}
}
