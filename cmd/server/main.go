package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/provider"
	"github.com/cricklet/perftdiff/internal/session"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type UpdateToWeb struct {
	FenString string   `json:"fenString"`
	Moves     []string `json:"moves"`
	Depth     int      `json:"depth"`
	DiffLines []string `json:"diffLines"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.Moves, ", ", u.Depth)
}

type MessageFromWeb struct {
	NewFen   *string `json:"newFen"`
	NewDepth *int    `json:"newDepth"`
	Move     *string `json:"move"`
	Parent   *bool   `json:"parent"`
	Root     *bool   `json:"root"`
	Diff     *bool   `json:"diff"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.NewDepth != nil {
		return fmt.Sprint("MessageFromWeb NewDepth: ", *u.NewDepth)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Parent != nil {
		return "MessageFromWeb Parent"
	}
	if u.Root != nil {
		return "MessageFromWeb Root"
	}
	if u.Diff != nil {
		return "MessageFromWeb Diff"
	}
	return "MessageFromWeb unknown"
}

type LogForwarding struct {
	writeCallback func(message string)
}

func (l *LogForwarding) Println(v ...any) {
	l.writeCallback(fmt.Sprintln(v...))
}
func (l *LogForwarding) Printf(format string, v ...any) {
	l.writeCallback(fmt.Sprintf(format, v...))
}
func (l *LogForwarding) Print(v ...any) {
	l.writeCallback(fmt.Sprint(v...))
}

func newLeftProvider(scriptPath string, logger Logger) provider.Provider {
	if scriptPath == "" {
		return provider.NewBuiltinProvider("builtin")
	}
	return provider.NewScriptProvider(scriptPath, provider.WithScriptLogger(logger))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	scriptPath := ""
	port := 8002

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		} else {
			scriptPath = arg
		}
	}

	var upgrader = websocket.Upgrader{}

	var ws = func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if !IsNil(err) {
			panic(err)
		}
		defer c.Close()

		var forward = func(message string) {
			bytes, err := json.Marshal([]string{message})
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("logging: json marshal: ", err))
			}
			err = c.WriteMessage(websocket.TextMessage, bytes)
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, fmt.Sprint("logging: websocket: ", err))
			}
		}

		logger := &LogForwarding{
			writeCallback: func(message string) {
				forward(fmt.Sprintf("server: %v", message))
			},
		}

		left := newLeftProvider(scriptPath, &LogForwarding{
			writeCallback: func(message string) {
				forward(fmt.Sprintf("script: %v", message))
			},
		})
		right := provider.NewStockfishProvider(
			provider.WithStockfishLogger(&LogForwarding{
				writeCallback: func(message string) {
					forward(fmt.Sprintf("stockfish: %v", message))
				},
			}))

		s := session.NewSession(left, right,
			session.WithLogger(logger))
		defer s.Close()

		var sendUpdate = func(diffLines []string) {
			update := UpdateToWeb{
				FenString: s.Fen(),
				Moves:     notation.MoveStrings(s.Moves()),
				Depth:     s.Depth(),
				DiffLines: diffLines,
			}

			logger.Println("sending", update)
			bytes, err := json.Marshal(update)
			if !IsNil(err) {
				logger.Println("update: json marshal: ", err)
			}
			err = c.WriteMessage(websocket.TextMessage, bytes)
			if !IsNil(err) {
				logger.Println("websocket: ", err)
			}
		}

		var handleMessageFromWeb = func(bytes []byte) {
			var message MessageFromWeb
			jsonErr := json.Unmarshal(bytes, &message)
			if !IsNil(jsonErr) {
				logger.Println("handleMessageFromWeb: json unmarshal: ", jsonErr)
				return
			}
			logger.Println("received", message)

			input := ""
			if message.NewFen != nil {
				input = "fen " + *message.NewFen
			} else if message.NewDepth != nil {
				input = "depth " + strconv.Itoa(*message.NewDepth)
			} else if message.Move != nil {
				input = "move " + *message.Move
			} else if message.Parent != nil {
				input = "parent"
			} else if message.Root != nil {
				input = "root"
			} else if message.Diff != nil {
				input = "diff"
			} else {
				logger.Println("ignoring", message)
				return
			}

			lines, err := s.HandleInput(input)
			if !IsNil(err) {
				forward(fmt.Sprintf("error: %v", err.Message()))
				return
			}

			sendUpdate(lines)
		}

		for {
			_, message, err := c.ReadMessage()
			if !IsNil(err) {
				logger.Printf("Error: %v", err)
				break
			} else {
				handleMessageFromWeb(message)
			}
		}
	}

	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, RootDir()+"/static/index.html")
	}

	fmt.Println("serving at", port)
	if scriptPath != "" {
		fmt.Println("comparing", scriptPath, "against stockfish")
	} else {
		fmt.Println("comparing builtin against stockfish")
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", ws)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(RootDir()+"/static"))))
	router.HandleFunc("/", index)
	serveErr := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), router))
	if !IsNil(serveErr) {
		fmt.Fprintln(os.Stderr, serveErr)
		os.Exit(1)
	}
}
