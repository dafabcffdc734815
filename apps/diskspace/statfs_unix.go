//go:build unix

package diskspace

import "golang.org/x/sys/unix"

func statfs(path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Usage{}, err
	}
	bsize := uint64(st.Bsize)
	return Usage{
		Free:  uint64(st.Bavail) * bsize,
		Total: uint64(st.Blocks) * bsize,
	}, nil
}
