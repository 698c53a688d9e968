package scan

import (
	"fmt"

	"github.com/tanksim/tanksim-go/pkg/plant"
	"github.com/tanksim/tanksim-go/pkg/register"
)

// Output is what a cycle publishes.
type Output struct {
	Reading   plant.State
	Status    plant.Status
	Actuators plant.Actuators
	Alarms    plant.Alarms
}

// Publisher writes telemetry and alarm blocks.
type Publisher struct {
	store  register.Store
	layout register.Layout
}

// NewPublisher creates a Publisher.
func NewPublisher(store register.Store, layout register.Layout) *Publisher {
	return &Publisher{store: store, layout: layout}
}

// Publish writes the telemetry block and then the alarm block, one store
// call each. Values are rounded and clamped to the register width.
func (p *Publisher) Publish(out Output) error {
	tel := p.layout.Telemetry
	if err := p.store.SetValues(tel.Table, tel.Base, EncodeTelemetry(out.Reading, out.Status)); err != nil {
		return fmt.Errorf("publish telemetry: %w", err)
	}
	alarms := p.layout.Alarms
	if err := p.store.SetValues(alarms.Table, alarms.Base, EncodeAlarms(out.Actuators, out.Alarms)); err != nil {
		return fmt.Errorf("publish alarms: %w", err)
	}
	return nil
}

// EncodeTelemetry encodes a reading and status word as a telemetry block.
func EncodeTelemetry(reading plant.State, status plant.Status) []uint16 {
	regs := make([]uint16, register.TelemetryCount)
	regs[register.TelLevel] = register.ClampUint16(reading.LevelCM)
	regs[register.TelInflow] = register.ClampUint16(reading.InflowLPS)
	regs[register.TelOutflow] = register.ClampUint16(reading.OutflowLPS)
	regs[register.TelTemperature] = register.FixedPoint(reading.TempC, register.TemperatureScale)
	regs[register.TelPressure] = register.ClampUint16(reading.PressureKPa)
	regs[register.TelStatus] = uint16(status)
	return regs
}

// EncodeAlarms encodes actuator and alarm bits as an alarm block.
func EncodeAlarms(act plant.Actuators, alarms plant.Alarms) []uint16 {
	bits := make([]uint16, register.AlarmCount)
	bits[register.AlarmPumpRunning] = register.FromBool(act.PumpRunning)
	bits[register.AlarmHeaterOn] = register.FromBool(act.HeaterOn)
	bits[register.AlarmHighLevel] = register.FromBool(alarms.HighLevel)
	bits[register.AlarmHighTemp] = register.FromBool(alarms.HighTemp)
	return bits
}
