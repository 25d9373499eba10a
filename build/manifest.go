package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ManifestFileName is the name of the project manifest file.
const ManifestFileName = "sysc.toml"

// tomlManifest represents a project manifest as it is encoded in TOML.
type tomlManifest struct {
	Name     string        `toml:"name"`
	Profiles []tomlProfile `toml:"profiles"`
}

type tomlProfile struct {
	Name       string `toml:"name"`
	Root       string `toml:"root"`
	OutputPath string `toml:"output-path"`
	Debug      bool   `toml:"debug"`
}

// Manifest is a loaded and validated project manifest.
type Manifest struct {
	// Name is the project name.
	Name string

	// AbsPath is the absolute path of the directory holding the manifest.
	AbsPath string

	// Profiles are the project's build profiles in declaration order.
	Profiles []*Profile
}

// Profile is one named build profile.  Its root path is resolved against the
// manifest's directory.
type Profile struct {
	Name string
	Root string

	// OutputPath is where the backend writes its output; empty if the profile
	// does not set one.
	OutputPath string

	Debug bool
}

// LoadManifest loads the manifest from the given project directory.
func LoadManifest(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	buff, err := os.ReadFile(filepath.Join(abs, ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("unable to open manifest at `%s`: %w", dir, err)
	}

	tomlMan := &tomlManifest{}
	if err := toml.Unmarshal(buff, tomlMan); err != nil {
		return nil, fmt.Errorf("error parsing manifest at `%s`: %w", dir, err)
	}

	return validateManifest(abs, tomlMan)
}

func validateManifest(abs string, tomlMan *tomlManifest) (*Manifest, error) {
	if tomlMan.Name == "" {
		return nil, fmt.Errorf("manifest at `%s` is missing a project name", abs)
	}

	man := &Manifest{Name: tomlMan.Name, AbsPath: abs}

	seen := make(map[string]struct{})
	for _, tomlProf := range tomlMan.Profiles {
		if tomlProf.Name == "" {
			return nil, fmt.Errorf("manifest at `%s` has a profile with no name", abs)
		}

		if _, dup := seen[tomlProf.Name]; dup {
			return nil, fmt.Errorf("manifest at `%s` has multiple profiles named `%s`", abs, tomlProf.Name)
		}
		seen[tomlProf.Name] = struct{}{}

		if tomlProf.Root == "" {
			return nil, fmt.Errorf("profile `%s` is missing a root file", tomlProf.Name)
		}

		outputPath := ""
		if tomlProf.OutputPath != "" {
			outputPath = filepath.Join(abs, filepath.FromSlash(tomlProf.OutputPath))
		}

		man.Profiles = append(man.Profiles, &Profile{
			Name:       tomlProf.Name,
			Root:       filepath.Join(abs, filepath.FromSlash(tomlProf.Root)),
			OutputPath: outputPath,
			Debug:      tomlProf.Debug,
		})
	}

	if len(man.Profiles) == 0 {
		return nil, fmt.Errorf("manifest at `%s` declares no build profiles", abs)
	}

	return man, nil
}

// SelectProfile returns the named profile, or the first profile if name is
// empty.
func (m *Manifest) SelectProfile(name string) (*Profile, error) {
	if name == "" {
		return m.Profiles[0], nil
	}

	for _, prof := range m.Profiles {
		if prof.Name == name {
			return prof, nil
		}
	}

	return nil, fmt.Errorf("project `%s` has no profile named `%s`", m.Name, name)
}
