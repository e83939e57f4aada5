package effector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

func TestWebSearchOpensResultsPage(t *testing.T) {
	launcher := &device.FakeLauncher{}
	tool := NewWebSearch(launcher, logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{
		Name: command.WebSearch,
		Args: command.Args{"query": "golang generics"},
	})
	require.True(t, outcome.OK)
	assert.Equal(t, "Your task has been completed.", outcome.Message)
	require.Len(t, launcher.OpenedURIs(), 1)
	assert.Equal(t, "https://www.google.com/search?q=golang+generics", launcher.OpenedURIs()[0])
}

func TestWebSearchSwallowsLaunchFailure(t *testing.T) {
	launcher := &device.FakeLauncher{OpenError: errors.New("no browser")}
	tool := NewWebSearch(launcher, logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{
		Name: command.WebSearch,
		Args: command.Args{"query": "anything"},
	})
	// Fire-and-forget: the completion text is reported either way.
	assert.Equal(t, "Your task has been completed.", outcome.Message)
	assert.True(t, outcome.OK)
}

func TestVideoSearchOpensYouTube(t *testing.T) {
	launcher := &device.FakeLauncher{}
	tool := NewVideoSearch(launcher, logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{
		Name: command.SearchYouTube,
		Args: command.Args{"query": "lofi beats"},
	})
	require.True(t, outcome.OK)
	assert.Equal(t, "Your task has been completed.", outcome.Message)
	require.Len(t, launcher.OpenedURIs(), 1)
	assert.Equal(t, "https://www.youtube.com/results?search_query=lofi+beats", launcher.OpenedURIs()[0])
}

func TestTakePhotoSuccess(t *testing.T) {
	tool := NewTakePhoto(&device.FakeCamera{Path: "/tmp/x.jpg"}, device.AllowAll(), logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{Name: command.TakePhoto})
	require.True(t, outcome.OK)
	assert.Equal(t, "Task completed successfully.", outcome.Message)
}

func TestTakePhotoPermissionDeniedIsSilent(t *testing.T) {
	tool := NewTakePhoto(&device.FakeCamera{}, device.DenyList{device.CapabilityCamera: true}, logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{Name: command.TakePhoto})
	assert.True(t, outcome.OK)
	assert.Empty(t, outcome.Message)
}

func TestTakePhotoNoCameraIsSilent(t *testing.T) {
	tool := NewTakePhoto(&device.FakeCamera{Err: device.ErrNoCamera}, device.AllowAll(), logging.Nop())

	outcome := tool.Execute(context.Background(), command.Command{Name: command.TakePhoto})
	assert.True(t, outcome.OK)
	assert.Empty(t, outcome.Message)
}
