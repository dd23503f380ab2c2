package discovery

import (
	"errors"
	"strings"
	"testing"
)

func TestDeviceTXTRoundTrip(t *testing.T) {
	info := &DeviceInfo{Label: "savings", DeviceID: "0123456789ABCDEF01234567", Protocol: 1}

	strs := TXTRecordsToStrings(EncodeDeviceTXT(info))
	want := []string{"id=0123456789ABCDEF01234567", "label=savings", "proto=1"}
	if strings.Join(strs, ",") != strings.Join(want, ",") {
		t.Fatalf("TXT = %v, want %v", strs, want)
	}

	got, err := DecodeDeviceTXT(StringsToTXTRecords(strs))
	if err != nil {
		t.Fatalf("DecodeDeviceTXT() error: %v", err)
	}
	if got.Label != info.Label || got.DeviceID != info.DeviceID || got.Protocol != info.Protocol {
		t.Errorf("decoded %+v, want %+v", got, info)
	}
}

func TestDeviceTXTLabelOptional(t *testing.T) {
	txt := EncodeDeviceTXT(&DeviceInfo{DeviceID: "AB", Protocol: 1})
	if _, ok := txt[TXTKeyLabel]; ok {
		t.Error("empty label should be omitted")
	}
}

func TestDecodeDeviceTXTErrors(t *testing.T) {
	tests := []struct {
		name string
		txt  TXTRecordMap
		want error
	}{
		{"MissingID", TXTRecordMap{TXTKeyProtocol: "1"}, ErrMissingRequired},
		{"MissingProto", TXTRecordMap{TXTKeyDeviceID: "AB"}, ErrMissingRequired},
		{"BadProto", TXTRecordMap{TXTKeyDeviceID: "AB", TXTKeyProtocol: "one"}, ErrInvalidTXTRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDeviceTXT(tt.txt); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInstanceName(t *testing.T) {
	tests := []struct {
		name string
		info DeviceInfo
		want string
	}{
		{"Label", DeviceInfo{Label: "savings", DeviceID: "0123456789AB"}, "savings"},
		{"FromID", DeviceInfo{DeviceID: "0123456789AB"}, "SkyGuard-01234567"},
		{"Truncated", DeviceInfo{Label: strings.Repeat("x", 80)}, strings.Repeat("x", MaxInstanceNameLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.InstanceName(); got != tt.want {
				t.Errorf("InstanceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateInstanceName(t *testing.T) {
	if err := ValidateInstanceName(""); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := ValidateInstanceName(strings.Repeat("a", 64)); !errors.Is(err, ErrInstanceNameTooLong) {
		t.Errorf("error = %v, want ErrInstanceNameTooLong", err)
	}
	if err := ValidateInstanceName("SkyGuard-01234567"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMDNSAdvertiserUpdateBeforeAdvertise(t *testing.T) {
	adv, err := NewMDNSAdvertiser(DefaultAdvertiserConfig())
	if err != nil {
		t.Fatalf("NewMDNSAdvertiser() error: %v", err)
	}
	defer adv.Stop()

	if err := adv.Update(&DeviceInfo{DeviceID: "AB"}); err == nil {
		t.Error("Update() before Advertise() should fail")
	}
}

func TestMDNSAdvertiserUnknownInterface(t *testing.T) {
	_, err := NewMDNSAdvertiser(AdvertiserConfig{Interface: "no-such-if0"})
	if err == nil {
		t.Error("unknown interface should be rejected")
	}
}
