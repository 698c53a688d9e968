package transport

import (
	"errors"
	"log/slog"

	"github.com/simonvetter/modbus"

	"github.com/tanksim/tanksim-go/pkg/register"
)

// Observer is notified of every served request.
type Observer interface {
	ObserveRequest(table register.Table, write bool, err error)
}

// Handler serves Modbus requests from a register store.
type Handler struct {
	store    register.Store
	layout   register.Layout
	unitID   uint8
	logger   *slog.Logger
	observer Observer
}

// NewHandler creates a handler for unitID. logger and observer may be nil.
func NewHandler(store register.Store, layout register.Layout, unitID uint8, logger *slog.Logger, observer Observer) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		store:    store,
		layout:   layout,
		unitID:   unitID,
		logger:   logger,
		observer: observer,
	}
}

// HandleCoils reads or writes coils.
func (h *Handler) HandleCoils(req *modbus.CoilsRequest) ([]bool, error) {
	var res []bool
	err := h.checkUnit(req.UnitId)
	if err == nil {
		if req.IsWrite {
			err = h.write(register.TableCoils, req.Addr, boolsToCells(req.Args))
		} else {
			res, err = h.readBits(register.TableCoils, req.Addr, req.Quantity)
		}
	}
	return res, h.done(register.TableCoils, req.IsWrite, req.ClientAddr, req.Addr, err)
}

// HandleDiscreteInputs reads discrete inputs.
func (h *Handler) HandleDiscreteInputs(req *modbus.DiscreteInputsRequest) ([]bool, error) {
	var res []bool
	err := h.checkUnit(req.UnitId)
	if err == nil {
		res, err = h.readBits(register.TableDiscreteInputs, req.Addr, req.Quantity)
	}
	return res, h.done(register.TableDiscreteInputs, false, req.ClientAddr, req.Addr, err)
}

// HandleHoldingRegisters reads or writes holding registers.
func (h *Handler) HandleHoldingRegisters(req *modbus.HoldingRegistersRequest) ([]uint16, error) {
	var res []uint16
	err := h.checkUnit(req.UnitId)
	if err == nil {
		if req.IsWrite {
			err = h.write(register.TableHoldingRegisters, req.Addr, req.Args)
		} else {
			res, err = h.store.GetValues(register.TableHoldingRegisters, req.Addr, int(req.Quantity))
		}
	}
	return res, h.done(register.TableHoldingRegisters, req.IsWrite, req.ClientAddr, req.Addr, err)
}

// HandleInputRegisters reads input registers. Ranges inside the telemetry
// block's address span are served from the telemetry block.
func (h *Handler) HandleInputRegisters(req *modbus.InputRegistersRequest) ([]uint16, error) {
	var res []uint16
	err := h.checkUnit(req.UnitId)
	if err == nil {
		table := register.TableInputRegisters
		if h.mirrorsTelemetry(req.Addr, req.Quantity) {
			table = h.layout.Telemetry.Table
		}
		res, err = h.store.GetValues(table, req.Addr, int(req.Quantity))
	}
	return res, h.done(register.TableInputRegisters, false, req.ClientAddr, req.Addr, err)
}

func (h *Handler) mirrorsTelemetry(addr, quantity uint16) bool {
	tel := h.layout.Telemetry
	return quantity > 0 && addr >= tel.Base && int(addr)+int(quantity) <= tel.End()
}

func (h *Handler) checkUnit(unitID uint8) error {
	if unitID != 0 && unitID != h.unitID {
		return modbus.ErrGWTargetFailedToRespond
	}
	return nil
}

func (h *Handler) readBits(table register.Table, addr, quantity uint16) ([]bool, error) {
	cells, err := h.store.GetValues(table, addr, int(quantity))
	if err != nil {
		return nil, err
	}
	bits := make([]bool, len(cells))
	for i, c := range cells {
		bits[i] = register.ToBool(c)
	}
	return bits, nil
}

func (h *Handler) write(table register.Table, addr uint16, values []uint16) error {
	if err := h.layout.CheckClientWrite(table, addr, len(values)); err != nil {
		return err
	}
	return h.store.SetValues(table, addr, values)
}

// done reports the request and converts store errors to Modbus exceptions.
func (h *Handler) done(table register.Table, write bool, client string, addr uint16, err error) error {
	if h.observer != nil {
		h.observer.ObserveRequest(table, write, err)
	}
	if err == nil {
		return nil
	}
	h.logger.Debug("modbus request refused",
		slog.String("client", client),
		slog.String("table", table.String()),
		slog.Bool("write", write),
		slog.Int("addr", int(addr)),
		slog.Any("error", err),
	)
	return Exception(err)
}

// Exception maps an error to the Modbus exception returned to the client.
func Exception(err error) error {
	var mbErr modbus.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &mbErr):
		return mbErr
	case errors.Is(err, register.ErrAddressOutOfRange),
		errors.Is(err, register.ErrReadOnly),
		errors.Is(err, register.ErrInvalidCount):
		return modbus.ErrIllegalDataAddress
	case errors.Is(err, register.ErrUnknownTable):
		return modbus.ErrIllegalFunction
	default:
		return modbus.ErrServerDeviceFailure
	}
}

func boolsToCells(bits []bool) []uint16 {
	cells := make([]uint16, len(bits))
	for i, b := range bits {
		cells[i] = register.FromBool(b)
	}
	return cells
}

var _ modbus.RequestHandler = (*Handler)(nil)
