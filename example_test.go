package fat16

import "fmt"

// ExampleVolume_basic_usage mirrors the teacher's ExampleFS_basic_usage:
// mount a volume, create a file, write to it, then reopen it by name and
// read the bytes back.
func ExampleVolume_basic_usage() {
	img := newTestImage(8)

	root, err := img.vol.OpenRoot()
	if err != nil {
		fmt.Println("open root:", err)
		return
	}

	f, err := img.vol.CreateFile(root, "HELLO.TXT")
	if err != nil {
		fmt.Println("create:", err)
		return
	}
	if _, err := f.Write([]byte("hello, fat16")); err != nil {
		fmt.Println("write:", err)
		return
	}

	root2, err := img.vol.OpenRoot()
	if err != nil {
		fmt.Println("reopen root:", err)
		return
	}
	found, err := root2.Find("HELLO.TXT")
	if err != nil || !found {
		fmt.Println("find failed:", err)
		return
	}

	buf := make([]byte, root2.Size())
	if _, err := root2.Read(buf); err != nil {
		fmt.Println("read:", err)
		return
	}

	fmt.Println(string(buf))
	// Output: hello, fat16
}
