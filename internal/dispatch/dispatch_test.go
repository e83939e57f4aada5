package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/effector"
	"sentry/internal/logging"
)

type recordingEffector struct {
	name    command.Name
	outcome effector.Outcome
	calls   []command.Command
}

func (r *recordingEffector) Name() command.Name { return r.name }

func (r *recordingEffector) Execute(_ context.Context, cmd command.Command) effector.Outcome {
	r.calls = append(r.calls, cmd)
	return r.outcome
}

func testDispatcher(t *testing.T) (*Dispatcher, map[command.Name]*recordingEffector) {
	t.Helper()
	d := New(logging.Nop())
	recorders := make(map[command.Name]*recordingEffector)
	for _, name := range command.Names() {
		if command.Reserved(name) {
			continue
		}
		rec := &recordingEffector{name: name, outcome: effector.Success("done " + string(name))}
		recorders[name] = rec
		require.NoError(t, d.Register(rec))
	}
	return d, recorders
}

func TestDispatchIsTotalOverVocabulary(t *testing.T) {
	d, recorders := testDispatcher(t)

	for _, name := range command.Names() {
		text := d.Dispatch(context.Background(), command.Command{Name: name, Args: command.Args{}})
		if command.Reserved(name) {
			assert.Empty(t, text, "reserved %s must stay silent", name)
			continue
		}
		assert.Equal(t, "done "+string(name), text)
		assert.Len(t, recorders[name].calls, 1, "%s must hit exactly one effector", name)
	}
}

func TestDispatchUnknownCommandIsSilent(t *testing.T) {
	d, recorders := testDispatcher(t)

	text := d.Dispatch(context.Background(), command.Command{Name: "playMusic", Args: command.Args{}})
	assert.Empty(t, text)
	for _, rec := range recorders {
		assert.Empty(t, rec.calls)
	}
}

func TestDispatchScheduleKeyPrecedence(t *testing.T) {
	d, recorders := testDispatcher(t)

	cases := []struct {
		args  command.Args
		title string
		date  string
	}{
		{command.Args{"event": "standup", "date": "2025-10-01T10:00:00Z"}, "standup", "2025-10-01T10:00:00Z"},
		{command.Args{"description": "dentist", "time": "2025-10-02T09:00:00Z"}, "dentist", "2025-10-02T09:00:00Z"},
		{command.Args{"event": "wins", "description": "loses", "text": "loses", "type": "loses", "date": "d", "time": "t"}, "wins", "d"},
		{command.Args{"type": "fallback"}, "fallback", ""},
	}
	for _, tc := range cases {
		recorders[command.CreateSchedule].calls = nil
		d.Dispatch(context.Background(), command.Command{Name: command.CreateSchedule, Args: tc.args})
		calls := recorders[command.CreateSchedule].calls
		require.Len(t, calls, 1)
		assert.Equal(t, tc.title, calls[0].Get("title"))
		assert.Equal(t, tc.date, calls[0].Get("date"))
	}
}

func TestDispatchRendersSilentOutcome(t *testing.T) {
	d := New(logging.Nop())
	require.NoError(t, d.Register(&recordingEffector{name: command.TakePhoto, outcome: effector.Silent()}))

	text := d.Dispatch(context.Background(), command.Command{Name: command.TakePhoto})
	assert.Empty(t, text)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	d := New(logging.Nop())
	require.NoError(t, d.Register(&recordingEffector{name: command.OpenApp}))
	assert.Error(t, d.Register(&recordingEffector{name: command.OpenApp}))
}

func TestNewFromDepsWiresEverything(t *testing.T) {
	d, err := NewFromDeps(Deps{
		Launcher: &device.FakeLauncher{},
		Contacts: &device.FakeContacts{},
		Calendar: &device.FakeCalendar{},
		Location: &device.FakeLocation{},
		Camera:   &device.FakeCamera{},
		Weather:  effector.WeatherConfig{APIKey: "k", BaseURL: "http://127.0.0.1:0"},
		Logger:   logging.Nop(),
	})
	require.NoError(t, err)

	for _, name := range command.Names() {
		if command.Reserved(name) {
			continue
		}
		d.mu.RLock()
		_, ok := d.effectors[name]
		d.mu.RUnlock()
		assert.True(t, ok, "effector missing for %s", name)
	}
}
