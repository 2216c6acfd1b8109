package keyring

import (
	"errors"

	"kustomate/internal/ports"

	"github.com/zalando/go-keyring"
)

// keyringService namespaces kustomate entries in the OS keyring.
const keyringService = "io.kustomate"

type ZalandoKeyring struct{}

func ProvideZalandoKeyring() ports.Keyring {
	return ZalandoKeyring{}
}

func (z ZalandoKeyring) GetKey(keyName string) (string, error) {
	return keyring.Get(keyringService, keyName)
}

func (z ZalandoKeyring) SetKey(keyName string, keyValue string) error {
	return keyring.Set(keyringService, keyName, keyValue)
}

func (z ZalandoKeyring) HasKey(keyName string) (bool, error) {
	_, err := keyring.Get(keyringService, keyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
