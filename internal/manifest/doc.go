// Package manifest provides types and utilities for loading and validating
// pak manifests. A manifest lists the source assets of a content tree and the
// directory their converted .pak files are written to.
//
// # Manifest Format
//
// The canonical format is XML, conventionally named Content.manifest:
//
//	<PakManifest>
//	  <OutputDir>Build</OutputDir>
//	  <Compress>false</Compress>
//	  <Content>
//	    <Asset name="ui/button">
//	      <Type>Texture</Type>
//	      <Build>Textures/button.png</Build>
//	    </Asset>
//	  </Content>
//	</PakManifest>
//
// The same structure may also be written as YAML, JSON or TOML, selected by
// file extension:
//
//	OutputDir: Build
//	Compress: false
//	Content:
//	  - name: ui/button
//	    Type: Texture
//	    Build: Textures/button.png
//
// # Usage
//
//	m, err := manifest.Parse("Content.manifest")
//	if err != nil {
//	    return err
//	}
//
//	for _, asset := range m.Assets {
//	    fmt.Println(asset.PakPath())
//	}
//
// # Error Handling
//
// The package defines sentinel errors for the two failure classes:
//   - ErrNotFound: the manifest file does not exist
//   - ErrInvalid: the document is malformed or fails validation; the
//     wrapped *ValidationError names the offending element
package manifest
