package installer

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigeyuk/serverConfig/pkg/errors"
	"github.com/nigeyuk/serverConfig/pkg/execx"
)

func TestInstall_NotConfirmed_NoSideEffect(t *testing.T) {
	fake := &execx.Fake{}
	inst := New("apt-get", fake)

	result, err := inst.Install(context.Background(), []string{"git", "make"}, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, result.Status)
	assert.Empty(t, fake.Calls, "package manager must never be invoked when not confirmed")
}

func TestInstall_Success(t *testing.T) {
	fake := &execx.Fake{}
	inst := New("apt-get", fake)

	result, err := inst.Install(context.Background(), []string{"git", "make"}, true)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "apt-get install -y git make", fake.Calls[0].String())
}

func TestInstall_EmptyList(t *testing.T) {
	fake := &execx.Fake{}
	inst := New("apt-get", fake)

	result, err := inst.Install(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Empty(t, fake.Calls)
}

func TestInstall_NonZeroExit(t *testing.T) {
	fake := &execx.Fake{
		StreamFunc: func(_ context.Context, _, _ io.Writer, _ string, _ ...string) (int, error) {
			return 100, nil
		},
	}
	inst := New("apt-get", fake)

	result, err := inst.Install(context.Background(), []string{"nosuchpkg"}, true)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInstall))
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, 100, result.ExitCode)
}

func TestInstall_ExecFailure(t *testing.T) {
	fake := &execx.Fake{
		StreamFunc: func(_ context.Context, _, _ io.Writer, _ string, _ ...string) (int, error) {
			return -1, errors.New(errors.ErrExec, "couldn't run apt-get", "")
		},
	}
	inst := New("apt-get", fake)

	result, err := inst.Install(context.Background(), []string{"git"}, true)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Equal(t, StatusFailed, result.Status)
}

func TestInstall_CustomAptCommand(t *testing.T) {
	fake := &execx.Fake{}
	inst := New("apt", fake)

	_, err := inst.Install(context.Background(), []string{"nginx"}, true)
	require.NoError(t, err)
	assert.True(t, fake.Ran("apt install -y nginx"))
}
