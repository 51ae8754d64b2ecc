package manifest

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// RootElement is the required name of the XML document element
const RootElement = "PakManifest"

// document is the format-neutral shape every decoder produces. Nil pointers
// mark elements that were absent from the source document.
type document struct {
	OutputDir *string
	Compress  *string
	Content   *[]documentAsset
}

type documentAsset struct {
	Name  *string
	Type  *string
	Build *string
}

type xmlManifest struct {
	XMLName   xml.Name
	OutputDir []string     `xml:"OutputDir"`
	Compress  []string     `xml:"Compress"`
	Content   []xmlContent `xml:"Content"`
}

type xmlContent struct {
	Assets []xmlAsset `xml:"Asset"`
}

type xmlAsset struct {
	Name  *string  `xml:"name,attr"`
	Type  []string `xml:"Type"`
	Build []string `xml:"Build"`
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// xmlReader returns data as UTF-8. A UTF-16 byte order mark is honored and
// reported through transcoded, after which the declared encoding is ignored.
func xmlReader(data []byte) (r io.Reader, transcoded bool) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		return transform.NewReader(bytes.NewReader(data), dec), true
	}
	return bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)), false
}

func decodeXML(data []byte) (*document, error) {
	r, transcoded := xmlReader(data)
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}

	var raw xmlManifest
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if raw.XMLName.Local != RootElement {
		return nil, invalid(RootElement, "root element is <%s>", raw.XMLName.Local)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	outputDir, err := single("OutputDir", raw.OutputDir)
	if err != nil {
		return nil, err
	}
	compress, err := single("Compress", raw.Compress)
	if err != nil {
		return nil, err
	}
	if len(raw.Content) > 1 {
		return nil, invalid("Content", "element appears %d times", len(raw.Content))
	}

	doc := &document{
		OutputDir: outputDir,
		Compress:  compress,
	}
	if len(raw.Content) == 1 {
		assets := make([]documentAsset, 0, len(raw.Content[0].Assets))
		for i, a := range raw.Content[0].Assets {
			element := assetElement(i)
			typ, err := single(element+"/Type", a.Type)
			if err != nil {
				return nil, err
			}
			build, err := single(element+"/Build", a.Build)
			if err != nil {
				return nil, err
			}
			assets = append(assets, documentAsset{Name: a.Name, Type: typ, Build: build})
		}
		doc.Content = &assets
	}
	return doc, nil
}

// expectEOF rejects anything after the root element other than whitespace,
// comments and processing instructions
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return invalid(RootElement, "text after the root element")
			}
		case xml.StartElement:
			return invalid(RootElement, "second root element <%s>", t.Name.Local)
		default:
			return invalid(RootElement, "unexpected content after the root element")
		}
	}
}

// single returns the only value of a repeated element, or nil when absent
func single(element string, values []string) (*string, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return &values[0], nil
	default:
		return nil, invalid(element, "element appears %d times", len(values))
	}
}

// structuredManifest is shared by the YAML, JSON and TOML decoders.
// Compress is untyped so both booleans and strings are accepted.
type structuredManifest struct {
	OutputDir *string            `yaml:"OutputDir" json:"OutputDir" toml:"OutputDir"`
	Compress  any                `yaml:"Compress" json:"Compress" toml:"Compress"`
	Content   *[]structuredAsset `yaml:"Content" json:"Content" toml:"Content"`
}

type structuredAsset struct {
	Name  *string `yaml:"name" json:"name" toml:"name"`
	Type  *string `yaml:"Type" json:"Type" toml:"Type"`
	Build *string `yaml:"Build" json:"Build" toml:"Build"`
}

func decodeYAML(data []byte) (*document, error) {
	var raw structuredManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raw.document(), nil
}

func decodeJSON(data []byte) (*document, error) {
	var raw structuredManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raw.document(), nil
}

func decodeTOML(data []byte) (*document, error) {
	var raw structuredManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raw.document(), nil
}

func (s *structuredManifest) document() *document {
	doc := &document{OutputDir: s.OutputDir}

	switch v := s.Compress.(type) {
	case nil:
	case bool:
		str := fmt.Sprint(v)
		doc.Compress = &str
	case string:
		doc.Compress = &v
	default:
		str := fmt.Sprint(v)
		doc.Compress = &str
	}

	if s.Content != nil {
		assets := make([]documentAsset, 0, len(*s.Content))
		for _, a := range *s.Content {
			assets = append(assets, documentAsset(a))
		}
		doc.Content = &assets
	}
	return doc
}

// decoderFor picks the document decoder for a file extension. Anything that
// is not YAML, JSON or TOML is read as XML.
func decoderFor(ext string) func([]byte) (*document, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAML
	case ".json":
		return decodeJSON
	case ".toml":
		return decodeTOML
	default:
		return decodeXML
	}
}
