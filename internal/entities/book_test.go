package entities

import "testing"

func TestBook_String(t *testing.T) {
	b := Book{
		Title:         "The Go Programming Language",
		ISBN:          "978-0134190440",
		PublishedYear: 2015,
	}
	want := `"The Go Programming Language" (2015) [978-0134190440]`
	if got := b.String(); got != want {
		t.Errorf("Book.String() = %v, want %v", got, want)
	}
}

func TestBook_Validate(t *testing.T) {
	tests := []struct {
		name    string
		book    Book
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid book",
			book: Book{
				Title:         "Dune",
				ISBN:          "978-0441172719",
				CategoryID:    1,
				PublishedYear: 1965,
				TotalCopies:   3,
			},
			wantErr: false,
		},
		{
			name: "missing title",
			book: Book{
				ISBN:        "978-0441172719",
				CategoryID:  1,
				TotalCopies: 1,
			},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name: "missing ISBN",
			book: Book{
				Title:       "Dune",
				CategoryID:  1,
				TotalCopies: 1,
			},
			wantErr: true,
			errMsg:  "ISBN is required",
		},
		{
			name: "missing category",
			book: Book{
				Title:       "Dune",
				ISBN:        "978-0441172719",
				TotalCopies: 1,
			},
			wantErr: true,
			errMsg:  "category ID is required",
		},
		{
			name: "zero copies",
			book: Book{
				Title:      "Dune",
				ISBN:       "978-0441172719",
				CategoryID: 1,
			},
			wantErr: true,
			errMsg:  "total copies must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Book.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Book.Validate() error = %q, want %q", err.Error(), tt.errMsg)
			}
		})
	}
}
