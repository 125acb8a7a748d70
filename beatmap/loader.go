package beatmap

// Loader turns a beatmap path into a parsed beatmap.
type Loader interface {
	Load(path string) (*Beatmap, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*Beatmap, error)

func (f LoaderFunc) Load(path string) (*Beatmap, error) { return f(path) }

// FileLoader decodes .osu files from disk.
var FileLoader Loader = LoaderFunc(DecodeFile)
