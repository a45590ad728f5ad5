// Package password хранит пароли учётных записей консоли в виде bcrypt-хешей.
package password

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash возвращает bcrypt-хеш пароля.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сверяет введённый пароль с хешем. Пробелы по краям ввода
// отбрасываются, регистр учитывается.
func Compare(hash, input string) error {
	const op = "password.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(input))); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
