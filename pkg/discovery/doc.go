// Package discovery announces a running simulator over mDNS/DNS-SD.
//
// The simulator registers one _modbus._tcp service per process, named
// "tanksim-<unit>", so trainees can find it without knowing its address:
//
//	tanksim-1._modbus._tcp.local.  port 5020
//	  unit=1 tb=1000 sb=1100 cad=1000 run=<uuid> ver=0.1.0
//
// TXT records carry what a client needs to talk to the simulator: the unit
// id, the telemetry and setpoint base addresses and the scan cadence in
// milliseconds.
package discovery
