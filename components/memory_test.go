package components

import (
	"testing"

	"github.com/voyagent/voyagent/schema"
)

func TestMemoryPreservesTurnOrder(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("first question"))
	mem.NewMessage(AssistantRole, schema.NewString("first answer"))
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("second question"))
	mem.NewMessage(AssistantRole, schema.NewString("second answer"))
	history := mem.History()
	if len(history) != 4 {
		t.Fatalf("expect 4 messages, but got %d", len(history))
	}
	expectRoles := []MessageRole{UserRole, AssistantRole, UserRole, AssistantRole}
	expectTexts := []string{"first question", "first answer", "second question", "second answer"}
	for idx, msg := range history {
		if msg.Role() != expectRoles[idx] {
			t.Errorf("message %d: expect role %s, but got %s", idx, expectRoles[idx], msg.Role())
		}
		if msg.StringifiedContent() != expectTexts[idx] {
			t.Errorf("message %d: expect content %s, but got %s", idx, expectTexts[idx], msg.StringifiedContent())
		}
	}
	if history[0].TurnID() == history[2].TurnID() {
		t.Error("expect distinct turn IDs for distinct turns")
	}
	if history[0].TurnID() != history[1].TurnID() {
		t.Error("expect messages of one turn to share a turn ID")
	}
}

func TestMemoryOverflow(t *testing.T) {
	mem := NewMemory(3)
	mem.NewTurn()
	for _, txt := range []string{"a", "b", "c", "d"} {
		mem.NewMessage(UserRole, schema.NewString(txt))
	}
	if count := mem.MessageCount(); count != 3 {
		t.Fatalf("expect 3 messages, but got %d", count)
	}
	history := mem.History()
	if got := history[0].StringifiedContent(); got != "b" {
		t.Errorf("expect oldest message dropped first, but got %s", got)
	}
	if got := history[2].StringifiedContent(); got != "d" {
		t.Errorf("expect newest message kept, but got %s", got)
	}
}

func TestMemoryDeleteTurn(t *testing.T) {
	mem := NewMemory(0)
	first := mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("hello"))
	mem.NewMessage(AssistantRole, schema.NewString("hi"))
	second := mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("goodbye"))
	if err := mem.DeleteTurn(first); err != nil {
		t.Fatal(err)
	}
	if count := mem.MessageCount(); count != 1 {
		t.Fatalf("expect 1 message, but got %d", count)
	}
	if mem.TurnID() != second {
		t.Errorf("expect current turn %s, but got %s", second, mem.TurnID())
	}
	if err := mem.DeleteTurn("missing"); err == nil {
		t.Error("expect error for unknown turn ID")
	}
}

func TestMemoryReset(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("hello"))
	mem.Reset()
	if count := mem.MessageCount(); count != 0 {
		t.Errorf("expect empty memory, but got %d messages", count)
	}
	if mem.TurnID() != "" {
		t.Errorf("expect empty turn ID, but got %s", mem.TurnID())
	}
}

func TestMemoryTokenCount(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.NewString("one two three"))
	mem.NewMessage(AssistantRole, schema.NewString("four five"))
	if n := mem.TokenCount(WordTokenCounter{}); n != 5 {
		t.Errorf("expect 5 tokens, but got %d", n)
	}
}
