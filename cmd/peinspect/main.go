package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/latortuga71/GoPE/internal/log"
	"github.com/latortuga71/GoPE/pkg/pefile"
)

func main() {
	parser := argparse.NewParser("peinspect", "Inspect a PE image without loading it")
	filePtr := parser.String("f", "file", &argparse.Options{Required: true, Help: "Path to the image"})
	exportPtr := parser.String("e", "export", &argparse.Options{Help: "Resolve an export by name"})
	ordinalPtr := parser.Int("o", "ordinal", &argparse.Options{Help: "Resolve an export by ordinal"})
	resourcePtr := parser.Int("r", "resource", &argparse.Options{Help: "Extract the raw-data resource with this id"})
	outPtr := parser.String("O", "out", &argparse.Options{Help: "Write the extracted resource to this path"})
	translatePtr := parser.Int("t", "translate", &argparse.Options{Help: "Translate a virtual offset to a file offset"})
	debugPtr := parser.Flag("d", "debug", &argparse.Options{Help: "Enable debug logging"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}
	log.Console()
	log.SetLevelInfo()
	if *debugPtr {
		log.SetLevelDebug()
	}

	data, err := os.ReadFile(*filePtr)
	if err != nil {
		log.Log.Fatal().Err(err).Msg("Failed to read image.")
	}
	img, err := pefile.Open(data)
	if err != nil {
		log.Log.Fatal().Err(err).Msg("Failed to parse image.")
	}
	printSummary(img)

	if *exportPtr != "" {
		rva, err := img.ResolveExport(pefile.SymbolName(*exportPtr))
		if err != nil {
			log.Log.Fatal().Err(err).Str("name", *exportPtr).Msg("Export lookup failed.")
		}
		log.Log.Info().Str("name", *exportPtr).Uint32("rva", rva).Msg("Resolved export.")
	}
	if *ordinalPtr != 0 {
		rva, err := img.ResolveExport(pefile.SymbolOrdinal(*ordinalPtr))
		if err != nil {
			log.Log.Fatal().Err(err).Int("ordinal", *ordinalPtr).Msg("Ordinal lookup failed.")
		}
		log.Log.Info().Int("ordinal", *ordinalPtr).Uint32("rva", rva).Msg("Resolved export.")
	}
	if *translatePtr != 0 {
		foa, err := img.RVAToOffset(uint32(*translatePtr))
		if err != nil {
			log.Log.Fatal().Err(err).Int("rva", *translatePtr).Msg("Translation failed.")
		}
		log.Log.Info().Int("rva", *translatePtr).Uint32("foa", foa).Msg("Translated offset.")
	}
	if *resourcePtr != 0 {
		blob, err := img.Resource(uint32(*resourcePtr))
		if err != nil {
			log.Log.Fatal().Err(err).Int("id", *resourcePtr).Msg("Resource lookup failed.")
		}
		if *outPtr == "" {
			os.Stdout.Write(blob)
			return
		}
		if err := os.WriteFile(*outPtr, blob, 0644); err != nil {
			log.Log.Fatal().Err(err).Msg("Failed to write resource.")
		}
		log.Log.Info().Int("id", *resourcePtr).Int("size", len(blob)).Str("out", *outPtr).Msg("Extracted resource.")
	}
}

func printSummary(img *pefile.Image) {
	nt := img.NTHeaders()
	oh := nt.OptionalHeader()
	bits := 32
	if img.Is64() {
		bits = 64
	}
	log.Log.Info().
		Int("bits", bits).
		Bool("mapped", img.IsMapped()).
		Str("machine", fmt.Sprintf("0x%x", nt.FileHeader().Machine)).
		Str("imageBase", fmt.Sprintf("0x%x", oh.ImageBase())).
		Str("entryPoint", fmt.Sprintf("0x%x", oh.AddressOfEntryPoint())).
		Uint16("subsystem", oh.Subsystem()).
		Int("sections", len(img.SectionHeaders())).
		Msg("Parsed image.")
	for _, s := range img.SectionHeaders() {
		sec := s
		log.Log.Debug().
			Str("name", sec.NameString()).
			Str("va", fmt.Sprintf("0x%x", sec.VirtualAddress)).
			Str("raw", fmt.Sprintf("0x%x", sec.PointerToRawData)).
			Uint32("rawSize", sec.SizeOfRawData).
			Msg("Section.")
	}
}
