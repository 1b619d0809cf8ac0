package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 0, e.Step())
	assert.Equal(t, Board{}, e.Snapshot())
	assert.Equal(t, PlayerX, e.ActivePlayer())
	assert.Equal(t, StatusInProgress, e.Status())
}

func TestEngine_ApplyMove(t *testing.T) {
	e := NewEngine()

	require.True(t, e.ApplyMove(4))
	assert.Equal(t, PlayerX, e.Snapshot()[4])
	assert.Equal(t, PlayerO, e.ActivePlayer())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 1, e.Step())
}

func TestEngine_ApplyMove_OutOfRange(t *testing.T) {
	e := NewEngine()

	assert.False(t, e.ApplyMove(-1))
	assert.False(t, e.ApplyMove(9))
	assert.Equal(t, 1, e.Len())
}

func TestEngine_ApplyMove_RejectionIsIdempotent(t *testing.T) {
	e := NewEngine()
	require.True(t, e.ApplyMove(0))

	for i := 0; i < 5; i++ {
		assert.False(t, e.ApplyMove(0), "occupied cell must stay rejected")
	}
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 1, e.Step())
	assert.Equal(t, PlayerO, e.ActivePlayer())
}

func TestEngine_TurnAlternates(t *testing.T) {
	e := NewEngine()
	moves := []int{0, 4, 1, 3}

	for i, index := range moves {
		if i%2 == 0 {
			assert.Equal(t, PlayerX, e.ActivePlayer(), "move %d", i)
		} else {
			assert.Equal(t, PlayerO, e.ActivePlayer(), "move %d", i)
		}
		require.True(t, e.ApplyMove(index))
	}
}

func TestEngine_HistoryLength(t *testing.T) {
	e := NewEngine()
	for i, index := range []int{0, 4, 1, 3} {
		require.True(t, e.ApplyMove(index))
		assert.Equal(t, i+2, e.Len())
	}
}

func TestEngine_WinStopsPlay(t *testing.T) {
	e := NewEngine()

	// X: 0, O: 4, X: 1, O: 3, X: 2 -> X takes the top row.
	for _, index := range []int{0, 4, 1, 3, 2} {
		require.True(t, e.ApplyMove(index))
	}

	assert.Equal(t, Board{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO, None, None, None, None}, e.Snapshot())
	assert.Equal(t, PlayerX, e.Winner())
	assert.Equal(t, StatusWon, e.Status())

	assert.False(t, e.ApplyMove(5), "moves after a win must be rejected")
	assert.Equal(t, 6, e.Len())
}

func TestEngine_Draw(t *testing.T) {
	e := NewEngine()

	for _, index := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		require.True(t, e.ApplyMove(index))
	}

	assert.Equal(t, None, e.Winner())
	assert.Equal(t, StatusDrawn, e.Status())
	assert.True(t, IsFull(e.Snapshot()))

	for i := 0; i < BoardSize; i++ {
		assert.False(t, e.ApplyMove(i), "drawn game must reject index %d", i)
	}
}

func TestEngine_JumpTo(t *testing.T) {
	e := NewEngine()
	for _, index := range []int{0, 1, 2} {
		require.True(t, e.ApplyMove(index))
	}

	e.JumpTo(1)
	assert.Equal(t, 1, e.Step())
	assert.Equal(t, Board{PlayerX, None, None, None, None, None, None, None, None}, e.Snapshot())
	assert.Equal(t, PlayerO, e.ActivePlayer())
	assert.Equal(t, 4, e.Len(), "jumping must not alter history")

	// Jumping forward again revisits the preserved future.
	e.JumpTo(3)
	assert.Equal(t, Board{PlayerX, PlayerO, PlayerX, None, None, None, None, None, None}, e.Snapshot())
}

func TestEngine_JumpTo_OutOfRangeIgnored(t *testing.T) {
	e := NewEngine()
	require.True(t, e.ApplyMove(0))

	e.JumpTo(-1)
	assert.Equal(t, 1, e.Step())
	e.JumpTo(2)
	assert.Equal(t, 1, e.Step())
}

func TestEngine_JumpThenBranch(t *testing.T) {
	e := NewEngine()
	for _, index := range []int{0, 1, 2} {
		require.True(t, e.ApplyMove(index))
	}
	require.Equal(t, 4, e.Len())

	e.JumpTo(1)
	require.True(t, e.ApplyMove(4))

	assert.Equal(t, 3, e.Len(), "branching must discard the old future")
	assert.Equal(t, 2, e.Step())
	assert.Equal(t, Board{PlayerX, None, None, None, PlayerO, None, None, None, None}, e.Snapshot())
}

func TestEngine_JumpBeyondWinRevisitsHistory(t *testing.T) {
	e := NewEngine()
	for _, index := range []int{0, 4, 1, 3, 2} {
		require.True(t, e.ApplyMove(index))
	}
	require.Equal(t, PlayerX, e.Winner())

	e.JumpTo(2)
	assert.Equal(t, None, e.Winner())
	assert.True(t, e.ApplyMove(8), "play may branch from before the win")
	assert.Equal(t, 4, e.Len())
}

func TestEngine_SnapshotIsACopy(t *testing.T) {
	e := NewEngine()
	require.True(t, e.ApplyMove(0))

	snapshot := e.Snapshot()
	snapshot[5] = PlayerO

	assert.Equal(t, None, e.Snapshot()[5], "history entries must stay immutable")
}

func TestEngine_Moves(t *testing.T) {
	e := NewEngine()
	require.True(t, e.ApplyMove(0))
	require.True(t, e.ApplyMove(4))

	moves := e.Moves()
	require.Len(t, moves, 3)
	assert.Equal(t, MoveLabel{Step: 0, Label: "Go to game start"}, moves[0])
	assert.Equal(t, MoveLabel{Step: 1, Label: "Go to move #1"}, moves[1])
	assert.Equal(t, MoveLabel{Step: 2, Label: "Go to move #2"}, moves[2])
}

func TestEngine_MoveSequence(t *testing.T) {
	e := NewEngine()
	played := []int{0, 4, 1, 3, 2}
	for _, index := range played {
		require.True(t, e.ApplyMove(index))
	}

	assert.Equal(t, played, e.MoveSequence())

	// Branching rewrites the tail of the sequence too.
	e.JumpTo(1)
	require.True(t, e.ApplyMove(8))
	assert.Equal(t, []int{0, 8}, e.MoveSequence())
}

func TestEngine_MarshalAndRestore(t *testing.T) {
	e := NewEngine()
	for _, index := range []int{0, 4, 1} {
		require.True(t, e.ApplyMove(index))
	}
	e.JumpTo(2)

	data, err := e.MarshalState()
	require.NoError(t, err)

	restored, err := RestoreState(data)
	require.NoError(t, err)

	assert.Equal(t, e.Len(), restored.Len())
	assert.Equal(t, e.Step(), restored.Step())
	assert.Equal(t, e.Snapshot(), restored.Snapshot())
	assert.Equal(t, e.ActivePlayer(), restored.ActivePlayer())
}

func TestRestoreState_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "garbage", data: "{"},
		{name: "empty history", data: `{"history":[],"step":0}`},
		{name: "pointer out of range", data: `{"history":[["","","","","","","","",""]],"step":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RestoreState([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
