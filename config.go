package arsc

import (
	"github.com/kwf2030/arsc/conv"
)

// DeviceConfig is the device configuration record a set of resource values
// targets. All fields are fixed-size so two configurations compare with ==.
// The record is self-sizing: fields past the base 28 bytes exist only when
// Size says so.
type DeviceConfig struct {
	Size uint32

	Mcc uint16
	Mnc uint16

	Language [2]byte
	Country  [2]byte

	Orientation uint8
	Touchscreen uint8
	Density     uint16

	Keyboard   uint8
	Navigation uint8
	InputFlags uint8
	InputPad0  uint8

	ScreenWidth  uint16
	ScreenHeight uint16

	SdkVersion   uint16
	MinorVersion uint16

	// Present only if Size > 28.
	ScreenLayout          uint8
	UiMode                uint8
	SmallestScreenWidthDp uint16

	// Present only if Size > 32.
	ScreenWidthDp  uint16
	ScreenHeightDp uint16

	// Present only if Size > 36.
	LocaleScript [4]byte

	// Present only if Size > 40.
	LocaleVariant [8]byte
}

// Locale renders the language/country pair, e.g. "en-US". Empty when the
// configuration matches any locale.
func (c DeviceConfig) Locale() string {
	lang := trim(string(c.Language[:]))
	if lang == "" {
		return ""
	}
	country := trim(string(c.Country[:]))
	if country == "" {
		return lang
	}
	return lang + "-" + country
}

// decodeConfig reads a device configuration record at off. The staged reads
// below mirror the record's growth over format revisions; the returned
// offset depends on Size and positions the caller at the following record.
func (d *Decoder) decodeConfig(data []byte, off int) (DeviceConfig, int, error) {
	var c DeviceConfig
	var err error
	if c.Size, off, err = conv.Uint32LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Mcc, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Mnc, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	var raw []byte
	if raw, off, err = conv.BytesAt(data, off, 2); err != nil {
		return c, off, err
	}
	copy(c.Language[:], raw)
	if raw, off, err = conv.BytesAt(data, off, 2); err != nil {
		return c, off, err
	}
	copy(c.Country[:], raw)
	if c.Orientation, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.Touchscreen, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.Density, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Keyboard, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.Navigation, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.InputFlags, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.InputPad0, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.ScreenWidth, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.ScreenHeight, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.SdkVersion, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.MinorVersion, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Size <= 28 {
		return c, off, nil
	}

	if c.ScreenLayout, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.UiMode, off, err = conv.Uint8At(data, off); err != nil {
		return c, off, err
	}
	if c.SmallestScreenWidthDp, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Size <= 32 {
		return c, off, nil
	}

	if c.ScreenWidthDp, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.ScreenHeightDp, off, err = conv.Uint16LAt(data, off); err != nil {
		return c, off, err
	}
	if c.Size <= 36 {
		return c, off, nil
	}

	if raw, off, err = conv.BytesAt(data, off, 4); err != nil {
		return c, off, err
	}
	copy(c.LocaleScript[:], raw)
	if c.Size <= 40 {
		return c, off, nil
	}

	if raw, off, err = conv.BytesAt(data, off, 8); err != nil {
		return c, off, err
	}
	copy(c.LocaleVariant[:], raw)
	if c.Size <= 48 {
		return c, off, nil
	}

	// Anything past 48 bytes is reserved. All-zero padding is fine, other
	// content is a format violation.
	tail := int(c.Size) - 48
	if raw, off, err = conv.BytesAt(data, off, tail); err != nil {
		return c, off, err
	}
	for _, b := range raw {
		if b != 0 {
			if err := d.formatViolation("non-zero reserved bytes in config record", off-tail); err != nil {
				return c, off, err
			}
			break
		}
	}
	return c, off, nil
}
