package wireserde

// FromTOML always fails: this package emits TOML but does not parse it
// back, per spec.md §4.4 ("TOML: emit only ... deserialization ...
// returns ErrUnsupported"). ToTOML's restricted subset (no multi-line
// strings, no dotted keys, no datetimes) was chosen to keep the emitter
// honest, not to make a decoder easy to add later.
func FromTOML(s string, v interface{}) error {
	return ErrUnsupported
}
