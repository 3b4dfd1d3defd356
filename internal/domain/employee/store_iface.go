package employee

import "context"

type StoreAPI interface {
	Create(ctx context.Context, emp Employee, firstNoteText string) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, query SearchQuery) ([]Employee, error)
	Get(ctx context.Context, matricula int64) (*Employee, error)
	Update(ctx context.Context, matricula int64, patch Patch) (*Employee, error)
	Delete(ctx context.Context, matricula int64, nome string, cpf int64) (string, error)
	ByMatriculas(ctx context.Context, matriculas []int64) ([]Employee, error)
	AddNote(ctx context.Context, matricula int64, text, category string) (*Note, error)
	UpdateNote(ctx context.Context, matricula, noteID int64, patch NotePatch) (*Note, error)
}
