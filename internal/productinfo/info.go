// Package productinfo builds the attribute map scraped from a product page.
package productinfo

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
)

// Well-known keys. Meta keys are whatever label precedes the colon on the
// page; the ones the scenarios check are listed here.
const (
	KeyHeader       = "header"
	KeyImageCount   = "imagecount"
	KeyBrand        = "Brand"
	KeyProductCode  = "Product Code"
	KeyRewardPoints = "Reward Points"
	KeyAvailability = "Availability"
	KeyPrice        = "productprice"
	KeyExTaxPrice   = "extaxprice"
)

var (
	ErrMalformedEntry = errors.New("entry is not in \"Key: Value\" form")
	ErrDuplicateKey   = errors.New("duplicate product attribute")
	ErrMissingPricing = errors.New("pricing list needs a price and an ex-tax entry")
	ErrNegativeCount  = errors.New("image count cannot be negative")
)

// Info is one scrape of a product page.
type Info struct {
	Header     string
	ImageCount int
	attrs      map[string]string
}

// Build assembles an Info from the raw page texts. meta holds the
// "Key: Value" lines of the first details list; pricing holds the entries of
// the second list, price first and "Ex Tax: value" second.
func Build(header string, imageCount int, meta, pricing []string) (Info, error) {
	if imageCount < 0 {
		return Info{}, fmt.Errorf("%w: %d", ErrNegativeCount, imageCount)
	}

	info := Info{
		Header:     strings.TrimSpace(header),
		ImageCount: imageCount,
		attrs:      make(map[string]string, len(meta)+2),
	}

	for _, line := range meta {
		key, value, err := splitEntry(line)
		if err != nil {
			return Info{}, err
		}
		if err := info.set(key, value); err != nil {
			return Info{}, err
		}
	}

	if len(pricing) < 2 {
		return Info{}, fmt.Errorf("%w: got %d entries", ErrMissingPricing, len(pricing))
	}
	_, exTax, err := splitEntry(pricing[1])
	if err != nil {
		return Info{}, err
	}
	if err := info.set(KeyPrice, strings.TrimSpace(pricing[0])); err != nil {
		return Info{}, err
	}
	if err := info.set(KeyExTaxPrice, exTax); err != nil {
		return Info{}, err
	}

	return info, nil
}

func splitEntry(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

func (i *Info) set(key, value string) error {
	if key == KeyHeader || key == KeyImageCount {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	if _, ok := i.attrs[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	i.attrs[key] = value
	return nil
}

// Get returns the value stored under key. The image count is returned in
// decimal form.
func (i Info) Get(key string) (string, bool) {
	switch key {
	case KeyHeader:
		return i.Header, true
	case KeyImageCount:
		return strconv.Itoa(i.ImageCount), true
	}
	v, ok := i.attrs[key]
	return v, ok
}

// Value is Get without the presence flag.
func (i Info) Value(key string) string {
	v, _ := i.Get(key)
	return v
}

// Keys returns every key in the map, header and image count first, the rest sorted.
func (i Info) Keys() []string {
	rest := make([]string, 0, len(i.attrs))
	for k := range i.attrs {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append([]string{KeyHeader, KeyImageCount}, rest...)
}

// Map flattens the info into plain strings.
func (i Info) Map() map[string]string {
	m := make(map[string]string, len(i.attrs)+2)
	for _, k := range i.Keys() {
		m[k] = i.Value(k)
	}
	return m
}

// Log prints every entry, one per line.
func (i Info) Log() {
	values := i.Map()
	for _, k := range i.Keys() {
		log.Printf("%s: %s", k, values[k])
	}
}
