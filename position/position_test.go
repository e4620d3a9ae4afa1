package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Pos(28),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(63),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(0),
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		rank, file int
		want       Pos
	}{
		{name: "a1", rank: 0, file: 0, want: Pos(0)},
		{name: "e2", rank: 1, file: 4, want: Pos(12)},
		{name: "h8", rank: 7, file: 7, want: Pos(63)},
		{name: "negative rank", rank: -1, file: 0, want: Invalid},
		{name: "file overflow", rank: 0, file: 8, want: Invalid},
		{name: "rank overflow", rank: 8, file: 3, want: Invalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := New(tt.rank, tt.file); got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()
	e4 := New(3, 4)

	if got, ok := e4.Offset(1, 1); !ok || got.Notation() != "f5" {
		t.Errorf("unexpected offset: got=%v ok=%v want=f5", got, ok)
	}
	if got, ok := e4.Offset(-2, -1); !ok || got.Notation() != "d2" {
		t.Errorf("unexpected offset: got=%v ok=%v want=d2", got, ok)
	}
	if _, ok := New(0, 7).Offset(0, 1); ok {
		t.Error("expected h1 east step to leave the board")
	}
	if _, ok := Invalid.Offset(0, 0); ok {
		t.Error("expected offset from invalid square to fail")
	}
}

func TestIsDark(t *testing.T) {
	t.Parallel()
	for n, want := range map[string]bool{"a1": true, "h1": false, "d1": false, "e1": true, "h8": true, "a8": false} {
		p, err := NewPosFromNotation(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := p.IsDark(); got != want {
			t.Errorf("unexpected colour for %s: got=%v want=%v", n, got, want)
		}
	}
}
