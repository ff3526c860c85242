package store

import (
	"fmt"
	"testing"
)

func TestAppendAndReadConversation(t *testing.T) {
	db := testDB(t)

	err := db.AppendConversation(
		Entry{Role: "user", Content: "hello"},
		Entry{Role: "assistant", Content: "quack"},
	)
	if err != nil {
		t.Fatalf("AppendConversation: %v", err)
	}

	entries, err := db.Conversation()
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Role != "user" || entries[0].Content != "hello" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Role != "assistant" || entries[1].Content != "quack" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestConversationCapEvictsOldest(t *testing.T) {
	db := testDB(t)

	for i := 0; i < MaxHistory+1; i++ {
		err := db.AppendConversation(Entry{Role: "user", Content: fmt.Sprintf("msg-%d", i)})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := db.Conversation()
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(entries) != MaxHistory {
		t.Fatalf("len = %d, want %d", len(entries), MaxHistory)
	}

	// msg-0 was evicted; the window is msg-1 .. msg-30 in order.
	if entries[0].Content != "msg-1" {
		t.Errorf("oldest = %q, want msg-1", entries[0].Content)
	}
	if last := entries[len(entries)-1].Content; last != fmt.Sprintf("msg-%d", MaxHistory) {
		t.Errorf("newest = %q, want msg-%d", last, MaxHistory)
	}
}

func TestConversationLength(t *testing.T) {
	db := testDB(t)

	if n, _ := db.ConversationLength(); n != 0 {
		t.Errorf("empty length = %d", n)
	}
	db.AppendConversation(Entry{Role: "user", Content: "hi"})
	if n, _ := db.ConversationLength(); n != 1 {
		t.Errorf("length = %d, want 1", n)
	}
}

func TestClearConversation(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 5; i++ {
		db.AppendConversation(
			Entry{Role: "user", Content: "q"},
			Entry{Role: "assistant", Content: "a"},
		)
	}

	if err := db.ClearConversation(); err != nil {
		t.Fatalf("ClearConversation: %v", err)
	}
	if n, _ := db.ConversationLength(); n != 0 {
		t.Errorf("length after clear = %d, want 0", n)
	}
}
