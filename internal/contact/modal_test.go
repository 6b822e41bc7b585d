package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModal_DismissTriggersBehaveIdentically(t *testing.T) {
	for _, trig := range []DismissTrigger{DismissClose, DismissOutside, DismissEscape} {
		t.Run(string(trig), func(t *testing.T) {
			surf := newFakeSurface(nil)
			m := NewModal(surf)

			m.Show()
			m.Dismiss(trig)

			require.False(t, m.Visible())
			require.Equal(t, []bool{true, false}, surf.modalCalls)
		})
	}
}

func TestModal_Idempotent(t *testing.T) {
	surf := newFakeSurface(nil)
	m := NewModal(surf)

	m.Hide()
	require.Empty(t, surf.modalCalls, "hiding a hidden modal is a no-op")

	m.Show()
	m.Show()
	m.Hide()
	m.Dismiss(DismissEscape)
	require.Equal(t, []bool{true, false}, surf.modalCalls)
}

func TestNotifier_ReplaceAndDismiss(t *testing.T) {
	surf := newFakeSurface(nil)
	n := NewNotifier(surf, time.Minute)
	defer n.Close()

	first := n.Show("one", SeverityInfo)
	second := n.Show("two", SeverityError)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, []string{first.ID}, surf.dismissed, "new banner replaces the old one")
	require.Len(t, surf.visibleNotes(), 1)

	cur, ok := n.Current()
	require.True(t, ok)
	require.Equal(t, "two", cur.Message)

	require.False(t, n.Dismiss(first.ID))
	require.True(t, n.Dismiss(second.ID))
	require.False(t, n.Dismiss(second.ID))
	require.Empty(t, surf.visibleNotes())

	_, ok = n.Current()
	require.False(t, ok)
}

func TestNotifier_AutoDismiss(t *testing.T) {
	surf := newFakeSurface(nil)
	n := NewNotifier(surf, 20*time.Millisecond)
	defer n.Close()

	note := n.Show("saved", SeveritySuccess)
	require.Equal(t, 20*time.Millisecond, note.TTL)

	require.Eventually(t, func() bool { return len(surf.visibleNotes()) == 0 },
		time.Second, 2*time.Millisecond)
	_, ok := n.Current()
	require.False(t, ok)
}

func TestNotifier_CloseStopsTimer(t *testing.T) {
	surf := newFakeSurface(nil)
	n := NewNotifier(surf, 20*time.Millisecond)

	n.Show("stays", SeverityInfo)
	n.Close()

	time.Sleep(50 * time.Millisecond)
	require.Len(t, surf.visibleNotes(), 1)
}
