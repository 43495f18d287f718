package service

import (
	"bytes"
	"encoding/binary"
	"slices"
	"strconv"
	"time"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

const canonicalMagic = "license-document-v1"

// CanonicalBytes returns the byte string a license signature covers.
//
// Layout: the magic "license-document-v1" followed by each field as a 4-byte
// big-endian length and its bytes, in a fixed order. Maps are written as a length
// prefixed count followed by key/value pairs sorted by key. The output depends only
// on the document's values, never on map iteration order.
func CanonicalBytes(doc *licenseDomain.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(canonicalMagic)

	writeField(&buf, doc.LicenseID.String())
	writeField(&buf, string(doc.Type))
	writeField(&buf, strconv.Itoa(doc.Quantity))
	writeField(&buf, doc.Expiration.UTC().Format(time.RFC3339Nano))
	writeField(&buf, doc.Customer.Name)
	writeField(&buf, doc.Customer.Email)
	writeField(&buf, doc.Customer.Company)
	writeField(&buf, doc.ProductID.String())
	writeField(&buf, doc.ProductName)
	writeMap(&buf, doc.ProductFeatures)
	writeMap(&buf, doc.AdditionalAttributes)

	return buf.Bytes()
}

func writeField(buf *bytes.Buffer, value string) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(value)))
	buf.Write(size[:])
	buf.WriteString(value)
}

func writeMap(buf *bytes.Buffer, m map[string]string) {
	keys := sortedKeys(m)
	writeField(buf, strconv.Itoa(len(keys)))
	for _, k := range keys {
		writeField(buf, k)
		writeField(buf, m[k])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
