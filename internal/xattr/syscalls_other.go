//go:build !linux && !darwin

package xattr

import "errors"

type osSyscalls struct{}

func (osSyscalls) List(string, []byte, bool) (int, error)        { return 0, errors.ErrUnsupported }
func (osSyscalls) Get(string, string, []byte, bool) (int, error) { return 0, errors.ErrUnsupported }
func (osSyscalls) Set(string, string, []byte, bool) error        { return errors.ErrUnsupported }
func (osSyscalls) Remove(string, string, bool) error             { return errors.ErrUnsupported }
