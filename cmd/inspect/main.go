// Command inspect dumps the persisted timeline and outbox of one
// correspondence from a badger database, read-only.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"correspondence-lab/domain"
	"correspondence-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	correspondenceID := flag.String("correspondence", "", "Correspondence ID to inspect (empty scans all)")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	if err = db.View(func(txn *badger.Txn) error {
		if err := renderTimeline(txn, *correspondenceID); err != nil {
			return err
		}
		return renderOutbox(txn)
	}); err != nil {
		log.Fatal(err)
	}
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func scan(txn *badger.Txn, prefix string, visit func(key string, value []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefixBytes := []byte(prefix)
	for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
		item := it.Item()
		key := string(item.Key())
		if err := item.Value(func(v []byte) error {
			return visit(key, v)
		}); err != nil {
			return err
		}
	}
	return nil
}

func renderTimeline(txn *badger.Txn, correspondenceID string) error {
	color.Bold.Println("Status events")
	table := newTable([]string{"Key", "Status", "Changed", "Party", "Synced", "Text"})

	prefix := "status:"
	if correspondenceID != "" {
		prefix = fmt.Sprintf("status:%s:", correspondenceID)
	}
	if err := scan(txn, prefix, func(key string, value []byte) error {
		var event domain.StatusEvent
		if err := json.Unmarshal(value, &event); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}
		synced := ""
		if event.SyncedAt != nil {
			synced = event.SyncedAt.Format("2006-01-02 15:04:05")
		}
		table.Append([]string{
			key,
			string(event.Status),
			event.StatusChanged.Format("2006-01-02 15:04:05"),
			event.PartyUUID.String()[:8],
			synced,
			event.StatusText,
		})
		return nil
	}); err != nil {
		return err
	}
	table.Render()

	color.Bold.Println("\nDelete events")
	table = newTable([]string{"Key", "Kind", "Occurred", "Party"})

	prefix = "delete:"
	if correspondenceID != "" {
		prefix = fmt.Sprintf("delete:%s:", correspondenceID)
	}
	if err := scan(txn, prefix, func(key string, value []byte) error {
		var event domain.DeleteEvent
		if err := json.Unmarshal(value, &event); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}
		table.Append([]string{
			key,
			string(event.Kind),
			event.EventOccurred.Format("2006-01-02 15:04:05"),
			event.PartyUUID.String()[:8],
		})
		return nil
	}); err != nil {
		return err
	}
	table.Render()
	return nil
}

func renderOutbox(txn *badger.Txn) error {
	color.Bold.Println("\nOutbox jobs")
	table := newTable([]string{"Seq", "Kind", "State", "Correspondence", "Attempts", "End User", "Parent"})

	if err := scan(txn, "outbox:", func(key string, value []byte) error {
		var job repositories.Job
		if err := json.Unmarshal(value, &job); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}
		state := string(job.State)
		switch job.State {
		case repositories.JobSucceeded:
			state = color.Green.Sprint(state)
		case repositories.JobFailed:
			state = color.Red.Sprint(state)
		default:
			state = color.Yellow.Sprint(state)
		}
		parent := ""
		if job.ParentID != nil {
			parent = job.ParentID.String()[:8]
		}
		table.Append([]string{
			fmt.Sprintf("%d", job.Seq),
			string(job.Kind),
			state,
			job.CorrespondenceID.String()[:8],
			fmt.Sprintf("%d", job.Attempts),
			job.EndUserID,
			parent,
		})
		return nil
	}); err != nil {
		return err
	}
	table.Render()
	return nil
}
