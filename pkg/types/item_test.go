package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		name string
		exec string
		want string
	}{
		{name: "url field code", exec: "firefox %u", want: "firefox"},
		{name: "multiple codes", exec: "code --new-window %F %i", want: "code --new-window"},
		{name: "no codes", exec: "gnome-terminal", want: "gnome-terminal"},
		{name: "code in middle", exec: "env %U FOO=1 app", want: "env FOO=1 app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{ID: "test", Name: "Test", Exec: tt.exec}
			assert.Equal(t, tt.want, item.LaunchCommand())
		})
	}
}

func TestHaystack(t *testing.T) {
	item := Item{Name: "Firefox", Keywords: []string{"browser", "web"}}
	assert.Equal(t, "Firefox browser web", item.Haystack())

	bare := Item{Name: "Chromium"}
	assert.Equal(t, "Chromium", bare.Haystack())
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
	}{
		{name: "valid", item: Item{ID: "a", Name: "A", Exec: "a"}},
		{name: "missing id", item: Item{Name: "A", Exec: "a"}, wantErr: ErrMissingItemID},
		{name: "missing name", item: Item{ID: "a", Exec: "a"}, wantErr: ErrMissingItemName},
		{name: "blank exec", item: Item{ID: "a", Name: "A", Exec: "  "}, wantErr: ErrMissingExec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
