package detailcache

import (
	"fmt"

	"github.com/zjrosen/jjview/internal/indexedtext"
	"github.com/zjrosen/jjview/internal/jj"
)

// Key identifies one rendered variant of `jj show` output.
// Width is zero unless the format delegates to an external tool, which is
// the only case where output depends on the panel width.
type Key struct {
	Head   jj.Head
	Format jj.DiffFormat
	Width  int
}

// NewKey builds a normalized key.
func NewKey(head jj.Head, format jj.DiffFormat, width int) Key {
	if !format.IsTool() {
		width = 0
	}
	return Key{Head: head, Format: format, Width: width}
}

// WithHead returns the key with head substituted.
func (k Key) WithHead(head jj.Head) Key {
	return NewKey(head, k.Format, k.Width)
}

// Change returns the change identity the key belongs to.
func (k Key) Change() jj.ChangeID {
	return k.Head.ChangeID
}

func (k Key) String() string {
	if k.Width > 0 {
		return fmt.Sprintf("%s %s w=%d", k.Head, k.Format, k.Width)
	}
	return fmt.Sprintf("%s %s", k.Head, k.Format)
}

// Value is jj output indexed for windowed rendering, tagged with the key it
// was produced for. Values are never modified after NewValue.
type Value struct {
	key  Key
	text *indexedtext.Text
}

// NewValue indexes output under key.
func NewValue(key Key, output string) *Value {
	return &Value{key: key, text: indexedtext.New(output)}
}

// Key returns the key the value was produced for.
func (v *Value) Key() Key { return v.key }

// Text returns the indexed content.
func (v *Value) Text() *indexedtext.Text { return v.text }
