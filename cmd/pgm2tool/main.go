package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bodgit/pgm2/database"
	"github.com/bodgit/pgm2/igs"
	"github.com/bodgit/pgm2/memcard"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func regionToString(r int) string {
	switch r {
	case igs.Program:
		return "program"
	case igs.Tiles:
		return "tiles"
	case igs.BGTile:
		return "bgtile"
	case igs.SpriteMask:
		return "sprites_mask"
	case igs.SpriteColour:
		return "sprites_colour"
	default:
		return strconv.Itoa(r)
	}
}

func titles(c *cli.Context) error {
	names := make([]string, 0, len(igs.Titles))
	for name := range igs.Titles {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(true)

	table.SetHeader([]string{"Set", "Name", "Year", "Genre", "Keys"})

	for _, name := range names {
		t := igs.Titles[name]

		keys := "runtime"
		if t.Predecrypted {
			keys = fmt.Sprintf("%04x/%04x", t.U12Key, t.U16Key)
		}

		table.Append([]string{name, t.Name, strconv.FormatUint(uint64(t.Year), 10), t.Genre.String(), keys})
	}

	table.Render()

	return nil
}

func decrypt(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	path := c.Args().First()
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	title, ok := igs.Titles[base]
	if !ok {
		return cli.NewExitError(fmt.Errorf("unknown title %q", base), 1)
	}

	r, err := title.LoadRegions(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	title.Decrypt(r)

	if c.IsSet("key") {
		b, err := ioutil.ReadFile(c.String("key"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if len(b) != igs.TableSize {
			return cli.NewExitError(fmt.Errorf("cipher table must be %d bytes", igs.TableSize), 1)
		}

		var table [igs.TableSize]byte
		copy(table[:], b)
		igs.ProgramDecrypt(r.ROM[igs.Program], &table)
	}

	for i := 0; i < igs.Areas; i++ {
		if len(r.ROM[i]) == 0 {
			continue
		}

		out := filepath.Join(c.String("directory"), base+"_"+regionToString(i)+".bin")
		if err := ioutil.WriteFile(out, r.ROM[i], 0644); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

func cardList(c *cli.Context) error {
	db, err := database.New(c.String("database"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	cards, err := db.Cards()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")

	table.SetHeader([]string{"Title", "SHA1"})

	for _, card := range cards {
		table.Append([]string{card.Title, card.SHA1})
	}

	table.Render()

	return nil
}

func cardImport(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	b, err := ioutil.ReadFile(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// validate the image before it goes anywhere near the database
	if err := memcard.NewImage().UnmarshalBinary(b); err != nil {
		return cli.NewExitError(err, 1)
	}

	db, err := database.New(c.String("database"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := db.Import(c.Args().First(), b); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func cardExport(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := database.New(c.String("database"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	title := c.Args().First()

	b, err := db.Export(title)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	out := filepath.Join(c.String("directory"), title+memcard.Extension)
	if err := ioutil.WriteFile(out, b, 0644); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pgm2tool"
	app.Usage = "IGS PGM2 ROM and memory card utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	databaseFlag := &cli.StringFlag{
		Name:    "database",
		Aliases: []string{"f"},
		Usage:   "card database",
		Value:   filepath.Join(cwd, "cards.db"),
	}

	app.Commands = []*cli.Command{
		{
			Name:        "titles",
			Usage:       "List the supported titles",
			Description: "",
			Action:      titles,
		},
		{
			Name:        "decrypt",
			Usage:       "Decrypt the ROM images of an existing set",
			Description: "",
			Action:      decrypt,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "directory",
					Aliases: []string{"d"},
					Usage:   "output directory",
					Value:   cwd,
				},
				&cli.StringFlag{
					Name:  "key",
					Usage: "256 byte program cipher table `FILE`",
				},
			},
		},
		{
			Name:  "card",
			Usage: "Manage memory card images",
			Subcommands: []*cli.Command{
				{
					Name:        "list",
					Usage:       "List the stored card images",
					Description: "",
					Action:      cardList,
					Flags:       []cli.Flag{databaseFlag},
				},
				{
					Name:        "import",
					Usage:       "Store a " + memcard.Extension + " card image for a title",
					Description: "",
					Action:      cardImport,
					Flags:       []cli.Flag{databaseFlag},
				},
				{
					Name:        "export",
					Usage:       "Write out the stored card image for a title",
					Description: "",
					Action:      cardExport,
					Flags: []cli.Flag{
						databaseFlag,
						&cli.StringFlag{
							Name:    "directory",
							Aliases: []string{"d"},
							Usage:   "output directory",
							Value:   cwd,
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
