package discovery

import (
	"fmt"
	"sort"
	"strconv"
)

// TXTRecordMap represents TXT records as key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates TXT records from service info. Empty optional fields are
// omitted.
func EncodeTXT(info *ServiceInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyUnit:          strconv.Itoa(int(info.UnitID)),
		TXTKeyTelemetryBase: strconv.Itoa(int(info.TelemetryBase)),
		TXTKeySetpointBase:  strconv.Itoa(int(info.SetpointBase)),
		TXTKeyCadence:       strconv.FormatInt(info.Cadence.Milliseconds(), 10),
	}
	if info.RunID != "" {
		txt[TXTKeyRunID] = info.RunID
	}
	if info.Version != "" {
		txt[TXTKeyVersion] = info.Version
	}
	if info.MapVersion != "" {
		txt[TXTKeyMapVersion] = info.MapVersion
	}
	return txt
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
