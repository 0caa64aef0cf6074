package blob

import "bytes"

// A file revision may start with a metadata block:
//
//	\x01\n
//	key: value\n
//	...
//	\x01\n
//
// followed by file content. Copy information ("copy", "copyrev") is the
// usual occupant.
var metaMarker = []byte("\x01\n")

// ExtractMeta returns the metadata block of data without its markers and
// the offset at which file content starts. Data without a complete
// metadata block yields (nil, 0).
func ExtractMeta(data []byte) ([]byte, int) {
	n := len(metaMarker)
	if !bytes.HasPrefix(data, metaMarker) {
		return nil, 0
	}
	end := bytes.Index(data[n:], metaMarker)
	if end < 0 {
		return nil, 0
	}
	return data[n : n+end], n + end + n
}

// ParseMeta decodes "key: value" lines of a metadata block. Lines
// without separator are skipped.
func ParseMeta(meta []byte) map[string]string {
	kv := make(map[string]string)
	for _, line := range bytes.Split(meta, []byte{'\n'}) {
		i := bytes.Index(line, []byte(": "))
		if i < 0 {
			continue
		}
		kv[string(line[:i])] = string(line[i+2:])
	}
	return kv
}

// EncodeMeta builds a metadata block followed by content. Keys are
// written in the given order.
func EncodeMeta(keys []string, kv map[string]string, content []byte) []byte {
	var buf bytes.Buffer
	buf.Write(metaMarker)
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(kv[k])
		buf.WriteByte('\n')
	}
	buf.Write(metaMarker)
	buf.Write(content)
	return buf.Bytes()
}
