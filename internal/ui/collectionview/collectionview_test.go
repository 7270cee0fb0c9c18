package collectionview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/domain"
)

// fakeItem is a minimal conforming item renderer.
type fakeItem struct {
	Base
	item    domain.Item
	updates int
}

func newFakeItem(item domain.Item) ItemRenderer {
	return &fakeItem{Base: NewBase(), item: item}
}

func (f *fakeItem) Item() domain.Item { return f.item }

func (f *fakeItem) Update(tea.Msg) tea.Cmd {
	f.updates++
	return nil
}

func (f *fakeItem) View(int) string { return "item:" + f.item.String("name") }

// fakeHeader is a minimal conforming header renderer.
type fakeHeader struct {
	Base
}

func newFakeHeader() HeaderRenderer {
	return &fakeHeader{Base: NewBase()}
}

func (f *fakeHeader) Update(tea.Msg) tea.Cmd { return nil }
func (f *fakeHeader) View(int) string        { return "header" }

// brokenHeader violates the capability contract: its zero Base has no broker.
type brokenHeader struct {
	Base
}

func (b *brokenHeader) Update(tea.Msg) tea.Cmd { return nil }
func (b *brokenHeader) View(int) string        { return "broken" }

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterItem("fake", newFakeItem))
	require.NoError(t, reg.RegisterHeader("fake-header", newFakeHeader))
	return reg
}

func items(names ...string) []domain.Item {
	out := make([]domain.Item, len(names))
	for i, n := range names {
		out[i] = domain.NewItem(n, map[string]any{"name": n})
	}
	return out
}

// drain executes a command tree, flattening batches, and delivers produced
// messages on the returned channel. Listener commands that never fire stay
// parked until the model's teardown closes their channels.
func drain(cmd tea.Cmd) <-chan tea.Msg {
	out := make(chan tea.Msg, 32)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				go run(sub)
			}
			return
		}
		if msg != nil {
			out <- msg
		}
	}
	go run(cmd)
	return out
}

func awaitMsg(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestNew_MountsOneInstancePerItem(t *testing.T) {
	data := items("AngularJS", "React")

	m, err := New(newRegistry(t), Inputs{
		Data:           data,
		ItemRenderer:   "fake",
		HeaderRenderer: "fake-header",
	})
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 2, m.ItemCount())
	assert.True(t, m.HasHeader())
	assert.Equal(t, "AngularJS", m.Items()[0].Item().String("name"))
	assert.Equal(t, "React", m.Items()[1].Item().String("name"))
}

func TestNew_EmptyDataIsValid(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: nil, ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.ItemCount())
	assert.False(t, m.HasHeader())
}

func TestNew_AbsentHeaderKeyLeavesSlotEmpty(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("one"), ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	assert.False(t, m.HasHeader())
	assert.Equal(t, 1, m.ItemCount())
}

func TestNew_UnknownItemKeyFailsWithClearedSlots(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("one"), ItemRenderer: "nope"})

	require.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, m.ItemCount())
	assert.False(t, m.HasHeader())
}

func TestNew_BrokenHeaderCapabilityFails(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.RegisterHeader("broken", func() HeaderRenderer {
		return &brokenHeader{}
	}))

	m, err := New(reg, Inputs{
		Data:           items("one", "two"),
		ItemRenderer:   "fake",
		HeaderRenderer: "broken",
	})

	require.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, m.HasHeader(), "no header instance may be mounted")
	assert.Equal(t, 0, m.ItemCount(), "failed pass must not leave items mounted")
}

func TestNew_NilFactoryResultFails(t *testing.T) {
	reg := newRegistry(t)
	require.NoError(t, reg.RegisterItem("nil", func(domain.Item) ItemRenderer {
		return (*fakeItem)(nil)
	}))

	_, err := New(reg, Inputs{Data: items("one"), ItemRenderer: "nil"})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestSetInputs_UnchangedIsNoOp(t *testing.T) {
	data := items("a", "b")
	m, err := New(newRegistry(t), Inputs{Data: data, ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	before := m.Items()

	m2, cmd, err := m.SetInputs(Inputs{Data: items("a", "b"), ItemRenderer: "fake"})
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Same(t, before[0].(*fakeItem), m2.Items()[0].(*fakeItem), "unchanged inputs must not rebuild instances")
}

func TestSetInputs_ChangedDataRebuildsAll(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("a", "b"), ItemRenderer: "fake"})
	require.NoError(t, err)

	old := m.Items()[0].(*fakeItem)

	m, cmd, err := m.SetInputs(Inputs{Data: items("c"), ItemRenderer: "fake"})
	require.NoError(t, err)
	require.NotNil(t, cmd)
	defer m.Close()

	require.Equal(t, 1, m.ItemCount())
	assert.Equal(t, "c", m.Items()[0].Item().String("name"))
	assert.NotSame(t, old, m.Items()[0], "instances are never reused across renders")
}

func TestSetInputs_OldInstanceEventsNoLongerDeliver(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("a"), ItemRenderer: "fake"})
	require.NoError(t, err)

	old := m.Items()[0].(*fakeItem)
	oldListeners := drain(m.Init())

	m, _, err = m.SetInputs(Inputs{Data: items("b"), ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	// The old broker is closed; emitting is a no-op and the parked listener
	// observes only the channel close, producing no message.
	old.Emit("clicked", "payload")

	select {
	case msg := <-oldListeners:
		t.Fatalf("expected no delivery from destroyed instance, got %#v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdate_DropsStaleInstanceEvent(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("a"), ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	_, cmd := m.Update(instanceEventMsg{id: "destroyed-instance", event: Event{Name: "late"}})
	assert.Nil(t, cmd)
}

func TestEventForwarding_ItemPayloadRoundTrip(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("a", "b", "c"), ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	payload := &struct{ N int }{N: 42}
	second := m.Items()[1].(*fakeItem)

	listener := listenCmd(m.items[1])
	second.Emit("selected", payload)

	msg := listener()
	ev, ok := msg.(instanceEventMsg)
	require.True(t, ok, "expected instanceEventMsg, got %T", msg)

	m, cmd := m.Update(ev)
	out := awaitMsg(t, drain(cmd))

	itemEv, ok := out.(ItemEventMsg)
	require.True(t, ok, "expected ItemEventMsg, got %T", out)
	assert.Equal(t, 1, itemEv.Index)
	assert.Equal(t, "b", itemEv.ItemID)
	assert.Equal(t, "selected", itemEv.Event.Name)
	assert.Same(t, payload, itemEv.Event.Payload, "payload must be forwarded unchanged")
}

func TestEventForwarding_HeaderEvent(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{
		Data:           items("a"),
		ItemRenderer:   "fake",
		HeaderRenderer: "fake-header",
	})
	require.NoError(t, err)
	defer m.Close()

	header := m.header.renderer.(*fakeHeader)
	listener := listenCmd(m.header)
	header.Emit("title-clicked", "Articles")

	msg := listener()
	ev, ok := msg.(instanceEventMsg)
	require.True(t, ok)

	m, cmd := m.Update(ev)
	out := awaitMsg(t, drain(cmd))

	headerEv, ok := out.(HeaderEventMsg)
	require.True(t, ok, "expected HeaderEventMsg, got %T", out)
	assert.Equal(t, "title-clicked", headerEv.Event.Name)
	assert.Equal(t, "Articles", headerEv.Event.Payload)
}

func TestBoundItemIgnoresHostMutation(t *testing.T) {
	data := items("original")
	m, err := New(newRegistry(t), Inputs{Data: data, ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	data[0].Fields["name"] = "mutated"

	assert.Equal(t, "original", m.Items()[0].Item().String("name"))
}

func TestUpdate_RelaysMessagesToInstances(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{Data: items("a", "b"), ItemRenderer: "fake"})
	require.NoError(t, err)
	defer m.Close()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	for i, inst := range m.Items() {
		assert.Equal(t, 1, inst.(*fakeItem).updates, "instance %d should see relayed msg", i)
	}
}

func TestView_HeaderAboveItemsInOrder(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{
		Data:           items("AngularJS", "React"),
		ItemRenderer:   "fake",
		HeaderRenderer: "fake-header",
	})
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "header\nitem:AngularJS\nitem:React", m.View())
}

func TestClose_DestroysEverything(t *testing.T) {
	m, err := New(newRegistry(t), Inputs{
		Data:           items("a"),
		ItemRenderer:   "fake",
		HeaderRenderer: "fake-header",
	})
	require.NoError(t, err)

	m = m.Close()

	assert.Equal(t, 0, m.ItemCount())
	assert.False(t, m.HasHeader())
	assert.Empty(t, m.View())
}
