package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abiosoft/ishell/v2"
	"github.com/latortuga71/GoPE/pkg/bstr"
	"github.com/latortuga71/GoPE/pkg/pefile"
)

var (
	currentPath  string
	currentBytes []byte
	currentImage *pefile.Image
)

func requireImage(c *ishell.Context) bool {
	if currentImage == nil {
		c.Println("No image open. Use: open <path>")
		return false
	}
	return true
}

func parseNumber(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func main() {
	shell := ishell.New()
	shell.Println("GoPE interactive inspector")
	shell.AddCmd(&ishell.Cmd{
		Name: "open",
		Help: "open <path> - parse an image from disk",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("Usage: open <path>")
				return
			}
			data, err := os.ReadFile(c.Args[0])
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			img, err := pefile.Open(data)
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			currentPath = c.Args[0]
			currentBytes = data
			currentImage = img
			bits := 32
			if img.Is64() {
				bits = 64
			}
			c.Printf("Opened %s (%d-bit, mapped=%v, %d bytes)\n", currentPath, bits, img.IsMapped(), len(currentBytes))
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "info",
		Help: "show header summary",
		Func: func(c *ishell.Context) {
			if !requireImage(c) {
				return
			}
			nt := currentImage.NTHeaders()
			oh := nt.OptionalHeader()
			c.Printf("machine        0x%x\n", nt.FileHeader().Machine)
			c.Printf("image base     0x%x\n", oh.ImageBase())
			c.Printf("entry point    0x%x\n", oh.AddressOfEntryPoint())
			c.Printf("section align  0x%x\n", oh.SectionAlignment())
			c.Printf("file align     0x%x\n", oh.FileAlignment())
			c.Printf("size of image  0x%x\n", oh.SizeOfImage())
			c.Printf("subsystem      %d\n", oh.Subsystem())
			c.Printf("os version     %d.%d\n", oh.MajorOperatingSystemVersion(), oh.MinorOperatingSystemVersion())
			c.Printf("stack reserve  0x%x\n", oh.SizeOfStackReserve())
			c.Printf("heap reserve   0x%x\n", oh.SizeOfHeapReserve())
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "sections",
		Help: "list the section table",
		Func: func(c *ishell.Context) {
			if !requireImage(c) {
				return
			}
			for _, s := range currentImage.SectionHeaders() {
				sec := s
				c.Printf("%-8s va=0x%08x vsz=0x%08x raw=0x%08x rawsz=0x%08x\n",
					sec.NameString(), sec.VirtualAddress, sec.VirtualSize, sec.PointerToRawData, sec.SizeOfRawData)
			}
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "translate",
		Help: "translate <rva> - virtual offset to file offset",
		Func: func(c *ishell.Context) {
			if !requireImage(c) || len(c.Args) != 1 {
				return
			}
			rva, err := parseNumber(c.Args[0])
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			foa, err := currentImage.RVAToOffset(rva)
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			c.Printf("0x%x -> 0x%x\n", rva, foa)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "export",
		Help: "export <name> - resolve an export by name",
		Func: func(c *ishell.Context) {
			if !requireImage(c) || len(c.Args) != 1 {
				return
			}
			rva, err := currentImage.ResolveExport(pefile.SymbolName(c.Args[0]))
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			c.Printf("%s -> rva 0x%x\n", c.Args[0], rva)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "ordinal",
		Help: "ordinal <n> - resolve an export by ordinal",
		Func: func(c *ishell.Context) {
			if !requireImage(c) || len(c.Args) != 1 {
				return
			}
			ord, err := parseNumber(c.Args[0])
			if err != nil || ord > 0xFFFF {
				c.Println("Ordinal must be a 16-bit number.")
				return
			}
			rva, err := currentImage.ResolveExport(pefile.SymbolOrdinal(ord))
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			c.Printf("#%d -> rva 0x%x\n", ord, rva)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "xor",
		Help: "xor <name> <key> - resolve via the XOR-masked comparison path",
		Func: func(c *ishell.Context) {
			if !requireImage(c) || len(c.Args) != 2 {
				return
			}
			masked := bstr.Xor([]byte(c.Args[0]), []byte(c.Args[1]))
			rva, err := currentImage.ResolveExportXor(masked, []byte(c.Args[1]))
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			c.Printf("%s -> rva 0x%x (masked lookup)\n", c.Args[0], rva)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "resource",
		Help: "resource <id> [outfile] - extract a raw-data resource",
		Func: func(c *ishell.Context) {
			if !requireImage(c) || len(c.Args) < 1 {
				return
			}
			id, err := parseNumber(c.Args[0])
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			blob, err := currentImage.Resource(id)
			if err != nil {
				c.Printf("%s\n", err.Error())
				return
			}
			if len(c.Args) > 1 {
				if err := os.WriteFile(c.Args[1], blob, 0644); err != nil {
					c.Printf("%s\n", err.Error())
					return
				}
				c.Printf("Wrote %d bytes to %s\n", len(blob), c.Args[1])
				return
			}
			c.Printf("%d bytes\n%s", len(blob), hexDump(blob))
		},
	})
	shell.Run()
}

func hexDump(data []byte) string {
	out := ""
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		line := fmt.Sprintf("%08x  ", i)
		for j := i; j < end; j++ {
			line += fmt.Sprintf("%02x ", data[j])
		}
		out += line + "\n"
	}
	return out
}
