package collectionview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"curio/internal/domain"
	"curio/internal/log"
	"curio/internal/pubsub"
)

// Inputs is the full input snapshot of the collection view. Changing any
// part of it triggers a complete re-render.
type Inputs struct {
	// Data is the page of records to render, in display order.
	Data []domain.Item

	// ItemRenderer is the registry key of the item renderer. Required.
	ItemRenderer string

	// HeaderRenderer is the registry key of the header renderer. Empty means
	// no header: the header slot stays empty, which is not an error.
	HeaderRenderer string
}

// equal compares input snapshots by content: renderer keys, record count,
// and per-record fingerprints.
func (in Inputs) equal(other Inputs) bool {
	if in.ItemRenderer != other.ItemRenderer || in.HeaderRenderer != other.HeaderRenderer {
		return false
	}
	if len(in.Data) != len(other.Data) {
		return false
	}
	for i := range in.Data {
		if in.Data[i].Fingerprint() != other.Data[i].Fingerprint() {
			return false
		}
	}
	return true
}

// HeaderEventMsg is an event forwarded from the header renderer.
type HeaderEventMsg struct {
	Event Event
}

// ItemEventMsg is an event forwarded from an item renderer, tagged with the
// instance's position and bound record ID.
type ItemEventMsg struct {
	Index  int
	ItemID string
	Event  Event
}

// instanceEventMsg carries a broker event from one mounted instance back
// into the update loop, tagged with the instance identity so events from
// instances destroyed by a re-render can be dropped.
type instanceEventMsg struct {
	id    string
	event Event
}

const headerIndex = -1

// mounted is one occupied render slot: a renderer instance, its event
// subscription, and its position.
type mounted struct {
	id       string
	renderer Renderer
	sub      *pubsub.Subscription[Event]
	index    int // headerIndex for the header slot
	itemID   string
}

// Model is the collection view state. Like all curio components it has value
// semantics: methods return updated copies.
type Model struct {
	registry *Registry
	inputs   Inputs

	header *mounted
	items  []*mounted
	ids    map[string]*mounted

	width int
}

// New creates a collection view and performs the initial render pass.
// A configuration error leaves both slots empty.
func New(registry *Registry, inputs Inputs) (Model, error) {
	m := Model{registry: registry, ids: make(map[string]*mounted)}
	return m.render(inputs)
}

// Init is the onCreate hook: it arms event listeners for every mounted
// instance. Call it once after New, and use the command returned by
// SetInputs after input changes.
func (m Model) Init() tea.Cmd {
	return m.listenAll()
}

// SetInputs is the onInputsChanged hook. It compares the previous and next
// snapshots by content; when they differ it destroys every mounted instance
// (synchronously severing their event delivery) and rebuilds from the next
// snapshot. Unchanged inputs are a no-op.
func (m Model) SetInputs(next Inputs) (Model, tea.Cmd, error) {
	if m.inputs.equal(next) {
		return m, nil, nil
	}

	m, err := m.render(next)
	if err != nil {
		return m, nil, err
	}
	return m, m.listenAll(), nil
}

// Update routes instance events to the host and relays everything else to
// the mounted renderers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if ev, ok := msg.(instanceEventMsg); ok {
		inst, active := m.ids[ev.id]
		if !active {
			// Event raced a re-render; its instance is gone.
			return m, nil
		}

		forward := forwardCmd(inst, ev.event)
		return m, tea.Batch(forward, listenCmd(inst))
	}

	var cmds []tea.Cmd
	if m.header != nil {
		if cmd := m.header.renderer.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, inst := range m.items {
		if cmd := inst.renderer.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the header slot above the item slots, in data order.
func (m Model) View() string {
	var sections []string
	if m.header != nil {
		sections = append(sections, m.header.renderer.View(m.width))
	}
	for _, inst := range m.items {
		sections = append(sections, inst.renderer.View(m.width))
	}
	return strings.Join(sections, "\n")
}

// SetSize updates the render width.
func (m Model) SetSize(width int) Model {
	m.width = width
	return m
}

// ItemCount returns the number of mounted item instances.
func (m Model) ItemCount() int {
	return len(m.items)
}

// HasHeader reports whether the header slot is occupied.
func (m Model) HasHeader() bool {
	return m.header != nil
}

// Items returns the mounted item renderers in mount order.
func (m Model) Items() []ItemRenderer {
	out := make([]ItemRenderer, len(m.items))
	for i, inst := range m.items {
		out[i] = inst.renderer.(ItemRenderer)
	}
	return out
}

// Close destroys all mounted instances. The model is unusable afterwards.
func (m Model) Close() Model {
	return m.teardown()
}

// render is a full pass: synchronous teardown of the previous instances,
// then ordered reconstruction from the snapshot. On failure the slots stay
// empty and the stored inputs are zeroed so a retry with the same snapshot
// rebuilds instead of short-circuiting.
func (m Model) render(next Inputs) (Model, error) {
	m = m.teardown()

	built := make([]*mounted, 0, len(next.Data)+1)
	fail := func(err error) (Model, error) {
		for _, inst := range built {
			inst.sub.Cancel()
			inst.renderer.Destroy()
		}
		m.inputs = Inputs{}
		return m, err
	}

	var header *mounted
	if next.HeaderRenderer != "" {
		renderer, err := m.registry.newHeader(next.HeaderRenderer)
		if err != nil {
			return fail(err)
		}
		header = mount(renderer, headerIndex, "")
		built = append(built, header)
	}

	items := make([]*mounted, 0, len(next.Data))
	for i, record := range next.Data {
		renderer, err := m.registry.newItem(next.ItemRenderer, record)
		if err != nil {
			return fail(err)
		}
		inst := mount(renderer, i, record.ID)
		built = append(built, inst)
		items = append(items, inst)
	}

	m.header = header
	m.items = items
	m.ids = make(map[string]*mounted, len(built))
	for _, inst := range built {
		m.ids[inst.id] = inst
	}
	m.inputs = next

	log.Debug(log.CatView, "render pass complete",
		"items", len(items), "header", header != nil, "itemRenderer", next.ItemRenderer)
	return m, nil
}

// mount wires a fresh instance: the subscription is created before the
// instance becomes visible anywhere else.
func mount(r Renderer, index int, itemID string) *mounted {
	return &mounted{
		id:       uuid.NewString(),
		renderer: r,
		sub:      r.Broker().SubscribeHandle(),
		index:    index,
		itemID:   itemID,
	}
}

// teardown destroys every mounted instance. Subscriptions are cancelled
// before Destroy, so by the time teardown returns no event from an old
// instance can be delivered.
func (m Model) teardown() Model {
	destroy := func(inst *mounted) {
		inst.sub.Cancel()
		inst.renderer.Destroy()
	}

	if m.header != nil {
		destroy(m.header)
	}
	for _, inst := range m.items {
		destroy(inst)
	}

	m.header = nil
	m.items = nil
	m.ids = make(map[string]*mounted)
	m.inputs = Inputs{}
	return m
}

// listenAll arms one listener per mounted instance.
func (m Model) listenAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.items)+1)
	if m.header != nil {
		cmds = append(cmds, listenCmd(m.header))
	}
	for _, inst := range m.items {
		cmds = append(cmds, listenCmd(inst))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// listenCmd waits for the instance's next event. Returns nil when the
// subscription channel closes (instance destroyed).
func listenCmd(inst *mounted) tea.Cmd {
	id, ch := inst.id, inst.sub.C
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return instanceEventMsg{id: id, event: ev.Payload}
	}
}

// forwardCmd re-emits an instance event on the host-facing output for its
// origin slot. The payload crosses unchanged.
func forwardCmd(inst *mounted, ev Event) tea.Cmd {
	if inst.index == headerIndex {
		return func() tea.Msg {
			return HeaderEventMsg{Event: ev}
		}
	}
	index, itemID := inst.index, inst.itemID
	return func() tea.Msg {
		return ItemEventMsg{Index: index, ItemID: itemID, Event: ev}
	}
}
