package plant

// EvaluateAlarms derives the alarm bits from the final reading.
func EvaluateAlarms(p Params, reading State, sp Setpoints) Alarms {
	return Alarms{
		HighLevel: reading.LevelCM > p.LevelAlarmCM,
		HighTemp:  reading.TempC > p.TempAlarmThreshold(sp),
	}
}

// TempAlarmThreshold returns the high-temperature limit for the current
// setpoints.
func (p Params) TempAlarmThreshold(sp Setpoints) float64 {
	if p.TempAlarmMode == TempAlarmSetpoint {
		return sp.TempC + p.TempAlarmOffsetC
	}
	return p.TempAlarmC
}
