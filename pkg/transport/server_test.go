package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/simonvetter/modbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanksim/tanksim-go/internal/testutil"
	"github.com/tanksim/tanksim-go/pkg/register"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestURL(t *testing.T) {
	assert.Equal(t, "tcp://0.0.0.0:5020", URL("", 5020))
	assert.Equal(t, "tcp://127.0.0.1:502", URL("127.0.0.1", 502))
	assert.Equal(t, "tcp://[::1]:5020", URL("::1", 5020))
}

func TestNewServerDefaults(t *testing.T) {
	s, err := NewServer(testutil.NewStore(), register.DefaultLayout(), ServerConfig{})
	require.NoError(t, err)

	assert.Equal(t, "tcp://0.0.0.0:5020", s.URL())
	assert.Equal(t, uint8(DefaultUnitID), s.UnitID())
	assert.NotNil(t, s.Handler())
}

func TestNewServerRejectsOverlappingLayout(t *testing.T) {
	_, err := NewServer(testutil.NewStore(), register.NewLayout(0, 0, 1000, 1003), ServerConfig{})
	assert.ErrorIs(t, err, register.ErrLayoutOverlap)
}

func TestServerEndToEnd(t *testing.T) {
	store := testutil.NewStore()
	testutil.MustSet(t, store, register.TableHoldingRegisters, 1000, 600, 60, 40, 500, 160, 0)
	testutil.MustSet(t, store, register.TableDiscreteInputs, 0, 1, 0, 0, 1)

	port := freePort(t)
	s, err := NewServer(store, register.DefaultLayout(), ServerConfig{Host: "127.0.0.1", Port: port})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     s.URL(),
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return client.Open() == nil }, 2*time.Second, 20*time.Millisecond)
	defer client.Close()

	regs, err := client.ReadRegisters(1000, 6, modbus.HOLDING_REGISTER)
	require.NoError(t, err)
	assert.Equal(t, []uint16{600, 60, 40, 500, 160, 0}, regs)

	require.NoError(t, client.WriteRegister(1101, 75))
	assert.Equal(t, []uint16{75}, testutil.MustGet(t, store, register.TableHoldingRegisters, 1101, 1))

	require.NoError(t, client.WriteCoil(register.CmdPump, true))
	assert.Equal(t, []uint16{1}, testutil.MustGet(t, store, register.TableCoils, 0, 1))

	bits, err := client.ReadDiscreteInputs(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false, true}, bits)

	err = client.WriteRegister(1000, 1)
	assert.ErrorIs(t, err, modbus.ErrIllegalDataAddress)
}

func TestServerStartTwice(t *testing.T) {
	s, err := NewServer(testutil.NewStore(), register.DefaultLayout(), ServerConfig{Host: "127.0.0.1", Port: freePort(t)})
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.ErrorIs(t, s.Start(), ErrServerRunning)
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}
