// Package arsc decodes the compiled binary resource table embedded in
// Android application packages (resources.arsc) into a queryable model of
// packages, types, configurations and typed resource values.
package arsc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/kwf2030/arsc/conv"
)

const blockSize = 2048

// Decoder decodes one resource table per Decode call. The zero value is a
// lenient decoder logging to slog.Default.
type Decoder struct {
	strict bool
	logger *slog.Logger

	warnedWeak    bool
	warnedCompact bool
}

// NewDecoder returns a Decoder. In strict mode any reserved field holding a
// non-zero value aborts the parse; otherwise such violations are logged and
// the value is used as read.
func NewDecoder(strict bool) *Decoder {
	return &Decoder{strict: strict}
}

// SetLogger routes the decoder's warnings to l instead of slog.Default.
func (d *Decoder) SetLogger(l *slog.Logger) {
	d.logger = l
}

func (d *Decoder) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return slog.Default()
}

// formatViolation handles a reserved field that is not zero: fatal in strict
// mode, logged in lenient mode.
func (d *Decoder) formatViolation(msg string, off int) error {
	if d.strict {
		return &FormatError{Msg: msg, Offset: off}
	}
	d.log().Error("file format violation", "msg", msg, "offset", fmt.Sprintf("0x%x", off))
	return nil
}

// DecodeFile decodes a raw resource table file.
func (d *Decoder) DecodeFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return d.Decode(f)
}

// Decode reads one resource table from r. The table header is read first,
// then the remaining payload is loaded into memory and walked chunk by
// chunk. The returned table is ready for queries and AddAll.
func (d *Decoder) Decode(r io.Reader) (*Table, error) {
	head := make([]byte, 12)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("arsc: reading table header: %w", err)
	}
	hdr, off, err := readChunkHeader(head, 0)
	if err != nil {
		return nil, err
	}
	packageCount, _, err := conv.Uint32LAt(head, off)
	if err != nil {
		return nil, err
	}
	d.log().Debug("resource table", "packages", packageCount)

	t := &Table{Strings: make(map[uint32]string)}
	remaining := int(hdr.size) - int(hdr.headerSize)
	if remaining <= 0 {
		return t, nil
	}

	data := make([]byte, remaining)
	for total := 0; total < remaining; {
		end := total + blockSize
		if end > remaining {
			end = remaining
		}
		n, err := r.Read(data[total:end])
		if n > 0 {
			total += n
			continue
		}
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("arsc: reading table payload: %w", err)
	}

	for off := 0; off < len(data)-1; {
		chunkStart := off
		hdr, next, err := readChunkHeader(data, off)
		if err != nil {
			return nil, err
		}
		if int(hdr.size) < 8 {
			return nil, fmt.Errorf("arsc: chunk with impossible size %d (offset 0x%x)", hdr.size, chunkStart)
		}
		switch hdr.typ {
		case chunkStringPool:
			ph, poff, err := readStringPoolHeader(data, next)
			if err != nil {
				return nil, err
			}
			if _, err := readStringPool(data, poff, chunkStart, ph, t.Strings); err != nil {
				return nil, err
			}
		case chunkTablePackage:
			if err := d.parsePackage(data, next, chunkStart, hdr, t); err != nil {
				return nil, err
			}
		}
		off = chunkStart + int(hdr.size)
	}
	return t, nil
}

func (d *Decoder) parsePackage(data []byte, off, chunkStart int, hdr chunkHeader, t *Table) error {
	endOfRecord := chunkStart + int(hdr.size)

	id, off, err := conv.Uint32LAt(data, off)
	if err != nil {
		return err
	}
	// The package name is a fixed 256-byte zero-padded UTF-16LE field.
	rawName, off, err := conv.BytesAt(data, off, 256)
	if err != nil {
		return err
	}
	name := trim(decodeUTF16LE(rawName))

	typeStringsOff, off, err := conv.Uint32LAt(data, off)
	if err != nil {
		return err
	}
	if _, off, err = conv.Uint32LAt(data, off); err != nil { // lastPublicType
		return err
	}
	keyStringsOff, off, err := conv.Uint32LAt(data, off)
	if err != nil {
		return err
	}
	if _, off, err = conv.Uint32LAt(data, off); err != nil { // lastPublicKey
		return err
	}

	pkg := &Package{ID: id, Name: name}
	t.Packages = append(t.Packages, pkg)
	d.log().Debug("package", "id", id, "name", name)

	// Type and key pools live at their declared offsets from the package
	// chunk start; string offsets inside them are relative to the pool
	// chunk, not to the package chunk referring to it.
	typeStrings := make(map[uint32]string)
	if _, err := d.readPackagePool(data, chunkStart+int(typeStringsOff), "type", typeStrings); err != nil {
		return err
	}
	keyStrings := make(map[uint32]string)
	keyPoolEnd, err := d.readPackagePool(data, chunkStart+int(keyStringsOff), "key", keyStrings)
	if err != nil {
		return err
	}
	off = keyPoolEnd

	for off < endOfRecord {
		innerStart := off
		ih, next, err := readChunkHeader(data, off)
		if err != nil {
			return err
		}
		if int(ih.size) < 8 {
			return fmt.Errorf("arsc: chunk with impossible size %d (offset 0x%x)", ih.size, innerStart)
		}
		switch ih.typ {
		case chunkTableTypeSpec:
			if err := d.readTypeSpec(data, next, pkg, typeStrings); err != nil {
				return err
			}
		case chunkTableType:
			if err := d.readTypeChunk(data, next, innerStart, pkg, typeStrings, keyStrings, t.Strings); err != nil {
				return err
			}
		}
		off = innerStart + int(ih.size)
	}
	return nil
}

// readPackagePool decodes one of the per-package pools (type names or key
// names) located at poolStart and returns the offset just past the pool.
func (d *Decoder) readPackagePool(data []byte, poolStart int, kind string, dst map[uint32]string) (int, error) {
	hdr, off, err := readChunkHeader(data, poolStart)
	if err != nil {
		return 0, err
	}
	if hdr.typ != chunkStringPool {
		return 0, fmt.Errorf("arsc: unexpected chunk type 0x%x for package %s strings (offset 0x%x)", hdr.typ, kind, poolStart)
	}
	ph, off, err := readStringPoolHeader(data, off)
	if err != nil {
		return 0, err
	}
	if _, err := readStringPool(data, off, poolStart, ph, dst); err != nil {
		return 0, err
	}
	return poolStart + int(hdr.size), nil
}

// readTypeSpec declares a resource type; its name comes from the type pool
// at ordinal id-1.
func (d *Decoder) readTypeSpec(data []byte, off int, pkg *Package, typeStrings map[uint32]string) error {
	id, off, err := conv.Uint8At(data, off)
	if err != nil {
		return err
	}
	if id == 0 {
		if e := d.formatViolation("type spec id is zero", off-1); e != nil {
			return e
		}
	}
	res0, off, err := conv.Uint8At(data, off)
	if err != nil {
		return err
	}
	if res0 != 0 {
		if e := d.formatViolation("type spec res0 is not zero", off-1); e != nil {
			return e
		}
	}
	if _, off, err = conv.Uint16LAt(data, off); err != nil { // typesCount
		return err
	}
	if _, _, err = conv.Uint32LAt(data, off); err != nil { // entryCount
		return err
	}

	pkg.Types = append(pkg.Types, &Type{ID: id, Name: typeStrings[uint32(id)-1]})
	return nil
}

func (d *Decoder) readTypeChunk(data []byte, off, chunkStart int, pkg *Package, typeStrings, keyStrings, globalStrings map[uint32]string) error {
	id, off, err := conv.Uint8At(data, off)
	if err != nil {
		return err
	}
	if id == 0 {
		if e := d.formatViolation("type id is zero", off-1); e != nil {
			return e
		}
	}
	flags, off, err := conv.Uint8At(data, off)
	if err != nil {
		return err
	}
	if flags&typeFlagOffset16 != 0 {
		return ErrOffset16
	}
	if flags != 0 && flags != typeFlagSparse {
		if e := d.formatViolation("type flags are not zero or one", off-1); e != nil {
			return e
		}
	}
	reserved, off, err := conv.Uint16LAt(data, off)
	if err != nil {
		return err
	}
	if reserved != 0 {
		if e := d.formatViolation("type reserved field is not zero", off-2); e != nil {
			return e
		}
	}
	entryCount, off, err := conv.Uint32LAt(data, off)
	if err != nil {
		return err
	}
	entriesStart, off, err := conv.Uint32LAt(data, off)
	if err != nil {
		return err
	}
	cfg, off, err := d.decodeConfig(data, off)
	if err != nil {
		return err
	}

	resType := pkg.typeByID(id)
	if resType == nil {
		return fmt.Errorf("%w: id 0x%x (offset 0x%x)", ErrUndeclaredType, id, chunkStart)
	}
	conf := &Config{Device: cfg}
	resType.Configs = append(resType.Configs, conf)

	refs, _, err := readEntryIndex(data, off, entryCount, flags&typeFlagSparse != 0)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if ref.offset == noEntry {
			continue
		}
		pos := chunkStart + int(entriesStart) + int(ref.offset)
		entry, vpos, err := d.readEntry(data, pos)
		if err != nil {
			return err
		}

		var res Resource
		if entry.complex {
			res, err = d.readMapEntry(data, vpos, entry, resType.Name, globalStrings)
			if err != nil {
				return err
			}
		} else {
			val, _, verr := d.readValue(data, vpos)
			if errors.Is(verr, errValueTooLarge) {
				d.log().Warn("oversized value record, skipping entry", "size", val.size, "name", keyStrings[entry.key])
				continue
			}
			if verr != nil {
				return verr
			}
			res = d.parseValue(val, globalStrings)
			if res == nil {
				d.log().Error("could not parse resource, skipping entry",
					"name", keyStrings[entry.key], "dataType", fmt.Sprintf("0x%x", val.dataType))
				continue
			}
		}
		if res == nil {
			continue
		}

		info := res.info()
		if rn, ok := keyStrings[entry.key]; ok {
			info.ResourceName = rn
		} else {
			info.ResourceName = InvalidResourceName
		}
		// The id is fixed the first time this entry index shows up; entries
		// repeated under other configurations carry the same id.
		if info.ResourceID == 0 {
			info.ResourceID = ResourceID{
				PackageID:  uint8(pkg.ID),
				TypeID:     id,
				EntryIndex: uint16(ref.index),
			}.Value()
		}
		conf.Resources = append(conf.Resources, res)
	}
	return nil
}

// readMapEntry reads the count map records following a complex entry header.
// Under a type named "array", records resolving to strings are aggregated
// per map key into a single Array in encounter order instead of overwriting
// one another. A nil result (with nil error) means the whole entry is
// skipped.
func (d *Decoder) readMapEntry(data []byte, off int, entry tableEntry, typeName string, globalStrings map[uint32]string) (Resource, error) {
	cmp := &Complex{ResType: typeName, Values: make(map[string]Resource, entry.count)}
	for j := uint32(0); j < entry.count; j++ {
		name, next, err := conv.Uint32LAt(data, off)
		if err != nil {
			return nil, err
		}
		val, next, verr := d.readValue(data, next)
		if errors.Is(verr, errValueTooLarge) {
			// Without the record size the position of the remaining records
			// is unknown, so the whole entry goes.
			d.log().Warn("oversized value record in map entry, skipping entry", "size", val.size)
			return nil, nil
		}
		if verr != nil {
			return nil, verr
		}
		off = next

		res := d.parseValue(val, globalStrings)
		if res == nil {
			continue
		}
		mapName := strconv.Itoa(int(int32(name)))
		if typeName == "array" {
			if s, isString := res.(*String); isString {
				existing, ok := cmp.Values[mapName]
				if !ok {
					existing = &Array{}
					cmp.Values[mapName] = existing
				}
				// A prior non-array value under the same key is left alone.
				if arr, isArray := existing.(*Array); isArray {
					arr.Elements = append(arr.Elements, s)
				}
				continue
			}
		}
		cmp.Values[mapName] = res
	}
	return cmp, nil
}
