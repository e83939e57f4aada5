package device

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileContacts reads the address book from a YAML file:
//
//	- name: Mom
//	  phoneNumbers: ["+31612345678"]
//
// A missing file is an empty address book, not an error.
type FileContacts struct {
	Path string
}

func (f *FileContacts) List(_ context.Context, withPhoneNumbers bool) ([]Contact, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}

	var all []Contact
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse contacts: %w", err)
	}
	if !withPhoneNumbers {
		return all, nil
	}

	out := all[:0]
	for _, c := range all {
		if len(c.PhoneNumbers) > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}
