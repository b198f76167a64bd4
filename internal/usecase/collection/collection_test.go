package collection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	id   string
	note string
}

func (e entry) Key() string { return e.id }

func TestPrepend(t *testing.T) {
	var seq []entry
	for _, id := range []string{"a", "b", "c"} {
		seq = Prepend(seq, entry{id: id})
	}

	want := []entry{{id: "c"}, {id: "b"}, {id: "a"}}
	if diff := cmp.Diff(want, seq, cmp.AllowUnexported(entry{})); diff != "" {
		t.Errorf("Prepend order mismatch (-want +got):\n%s", diff)
	}
}

func TestPrependDoesNotModifyInput(t *testing.T) {
	seq := make([]entry, 2, 10)
	seq[0] = entry{id: "a"}
	seq[1] = entry{id: "b"}

	out := Prepend(seq, entry{id: "new"})

	assert.Len(t, out, 3)
	assert.Equal(t, "new", out[0].id)
	assert.Equal(t, []entry{{id: "a"}, {id: "b"}}, seq)
}

func TestPrependUnique(t *testing.T) {
	seq := []entry{{id: "u1"}}

	t.Run("new key goes first", func(t *testing.T) {
		out, err := PrependUnique(seq, entry{id: "u2"})
		require.NoError(t, err)
		assert.Equal(t, []entry{{id: "u2"}, {id: "u1"}}, out)
	})

	t.Run("duplicate key is rejected", func(t *testing.T) {
		out, err := PrependUnique(seq, entry{id: "u1", note: "again"})
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.Equal(t, seq, out)
	})

	t.Run("empty sequence", func(t *testing.T) {
		out, err := PrependUnique[entry](nil, entry{id: "u1"})
		require.NoError(t, err)
		assert.Equal(t, []entry{{id: "u1"}}, out)
	})
}

func TestPrependUniqueKeepsOneEntryPerKey(t *testing.T) {
	var seq []entry
	var err error
	for i := 0; i < 5; i++ {
		seq, err = PrependUnique(seq, entry{id: "same"})
		if i == 0 {
			require.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrAlreadyExists)
		}
	}
	assert.Len(t, seq, 1)
}

func TestRemoveByKey(t *testing.T) {
	tests := []struct {
		name    string
		seq     []entry
		key     string
		want    []entry
		wantErr error
	}{
		{
			name: "removes the match",
			seq:  []entry{{id: "a"}, {id: "b"}, {id: "c"}},
			key:  "b",
			want: []entry{{id: "a"}, {id: "c"}},
		},
		{
			name: "removes only the first match",
			seq:  []entry{{id: "x", note: "1"}, {id: "y"}, {id: "x", note: "2"}},
			key:  "x",
			want: []entry{{id: "y"}, {id: "x", note: "2"}},
		},
		{
			name:    "unknown key leaves sequence unchanged",
			seq:     []entry{{id: "a"}, {id: "b"}},
			key:     "zzz",
			want:    []entry{{id: "a"}, {id: "b"}},
			wantErr: ErrNotFound,
		},
		{
			name:    "empty sequence",
			seq:     []entry{},
			key:     "a",
			want:    []entry{},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]entry, len(tt.seq))
			copy(before, tt.seq)

			got, err := RemoveByKey(tt.seq, tt.key)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(entry{})); diff != "" {
				t.Errorf("RemoveByKey mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, before, tt.seq, "input must not be modified")
		})
	}
}

func TestPrependThenRemoveRestoresSequence(t *testing.T) {
	seq := []entry{{id: "a"}, {id: "b"}}

	added, err := PrependUnique(seq, entry{id: "c"})
	require.NoError(t, err)
	removed, err := RemoveByKey(added, "c")
	require.NoError(t, err)

	assert.Equal(t, seq, removed)
}

func TestIndexOfAndContains(t *testing.T) {
	seq := []entry{{id: "a"}, {id: "b"}, {id: "a"}}

	assert.Equal(t, 0, IndexOf(seq, "a"))
	assert.Equal(t, 1, IndexOf(seq, "b"))
	assert.Equal(t, -1, IndexOf(seq, "c"))
	assert.True(t, Contains(seq, "b"))
	assert.False(t, Contains(seq, "c"))
}
