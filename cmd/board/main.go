package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/docopt/docopt-go"

	"github.com/MonishPuttu/DRAWIFY/internal/client"
	"github.com/MonishPuttu/DRAWIFY/internal/discovery"
	"github.com/MonishPuttu/DRAWIFY/internal/shape"
	"github.com/MonishPuttu/DRAWIFY/internal/ui"
)

const usage = `DRAWIFY desktop board.

Usage:
  board [--server=<url>] [--room=<id>] [--username=<name>] [--password=<pw>] [--discover]
  board -h | --help

Options:
  -h --help          Show this screen.
  --server=<url>     Server base URL [default: http://localhost:5000].
  --room=<id>        Room to join [default: lobby].
  --username=<name>  Account name [default: guest].
  --password=<pw>    Account password [default: guest].
  --discover         Find a server on the LAN via mDNS instead of --server.`

type boardArgs struct {
	Server   string `docopt:"--server"`
	Room     string `docopt:"--room"`
	Username string `docopt:"--username"`
	Password string `docopt:"--password"`
	Discover bool   `docopt:"--discover"`
}

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal(err)
	}
	var args boardArgs
	if err := opts.Bind(&args); err != nil {
		log.Fatal(err)
	}

	if args.Discover {
		found := make(chan string, 1)
		if err := discovery.Browse(func(addr string) {
			select {
			case found <- "http://" + addr:
			default:
			}
		}); err != nil {
			log.Println("LAN discovery failed:", err)
		}
		select {
		case addr := <-found:
			args.Server = addr
			log.Println("discovered server at", addr)
		default:
			log.Println("no server found on the LAN, falling back to", args.Server)
		}
	}

	token, err := client.Login(args.Server, args.Username, args.Password)
	if err != nil {
		log.Fatal("could not log in: ", err)
	}

	conn, err := client.Dial(args.Server, token)
	if err != nil {
		log.Fatal("could not connect: ", err)
	}
	defer conn.Close()

	if err := conn.Join(args.Room); err != nil {
		log.Fatal("could not join room: ", err)
	}

	store := shape.NewStore()

	// replay history before the first frame; drawing during the fetch would
	// race an incomplete board anyway
	events, err := client.FetchSnapshot(args.Server, args.Room)
	if err != nil {
		log.Println("could not fetch snapshot, starting from an empty board:", err)
	}
	for _, ev := range events {
		store.Apply(ev)
	}

	boardApp := app.New()
	window := boardApp.NewWindow("DRAWIFY: " + args.Room)
	window.Resize(fyne.NewSize(1024, 768))

	board := ui.NewBoardWidget(1024, 768, store, &client.RoomTransport{Conn: conn, RoomID: args.Room})
	toolbar := ui.NewToolbar(board, store)
	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, board))

	go func() {
		err := conn.Listen(func(roomID string, ev shape.Event) {
			if roomID == args.Room {
				board.ApplyRemote(ev)
			}
		})
		log.Println("connection closed:", err)
	}()

	window.ShowAndRun()
}
