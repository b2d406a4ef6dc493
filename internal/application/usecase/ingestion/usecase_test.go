package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/budget-dashboard/backend/internal/application/usecase/session"
	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	spendingcache "github.com/budget-dashboard/backend/internal/integration/cache"
	"github.com/budget-dashboard/backend/internal/integration/parser/spending"
)

type mockReader struct {
	mock.Mock
}

func (m *mockReader) Supports(filename string) bool {
	return spending.NewReader().Supports(filename)
}

func (m *mockReader) Read(filename string, data []byte) (*entity.SpendingTable, error) {
	args := m.Called(filename, data)
	table, _ := args.Get(0).(*entity.SpendingTable)
	return table, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, digest string) (*entity.SpendingTable, error) {
	args := m.Called(ctx, digest)
	table, _ := args.Get(0).(*entity.SpendingTable)
	return table, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, digest string, table *entity.SpendingTable) error {
	return m.Called(ctx, digest, table).Error(0)
}

type mockUploadRepository struct {
	mock.Mock
}

func (m *mockUploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	return m.Called(ctx, upload).Error(0)
}

func (m *mockUploadRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Upload, error) {
	args := m.Called(ctx, sessionID)
	uploads, _ := args.Get(0).([]*entity.Upload)
	return uploads, args.Error(1)
}

func (m *mockUploadRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

func sampleTable() *entity.SpendingTable {
	return entity.NewSpendingTable([]string{"Jan", "Feb"}, []entity.SpendingRow{
		{Name: "Salary", Depth: 1, Values: []decimal.Decimal{decimal.NewFromInt(6000), decimal.NewFromInt(6000)}},
		{Name: "Groceries", Depth: 1, Values: []decimal.Decimal{decimal.NewFromInt(-420), decimal.NewFromInt(-380)}},
	})
}

type fixture struct {
	manager *session.Manager
	session *session.Session
	reader  *mockReader
	cache   *mockCache
	repo    *mockUploadRepository
	uc      *UploadActualsUseCase
}

func newFixture(maxBytes int64) *fixture {
	f := &fixture{
		manager: session.NewManager(time.Hour, nil),
		reader:  new(mockReader),
		cache:   new(mockCache),
		repo:    new(mockUploadRepository),
	}
	f.session = f.manager.Create()
	f.uc = NewUploadActualsUseCase(f.manager, f.reader, f.cache, f.repo, maxBytes)
	return f
}

func ingestionCode(t *testing.T, err error) domainerror.IngestionErrorCode {
	t.Helper()
	var ingestionErr *domainerror.IngestionError
	require.ErrorAs(t, err, &ingestionErr)
	return ingestionErr.Code
}

func TestUploadActualsUseCase_ParsesAndCaches(t *testing.T) {
	f := newFixture(0)
	data := []byte("Category,Jan,Feb")
	digest := session.Digest(data)
	table := sampleTable()

	f.cache.On("Get", mock.Anything, digest).Return(nil, nil).Once()
	f.reader.On("Read", "export.csv", data).Return(table, nil).Once()
	f.cache.On("Set", mock.Anything, digest, table).Return(nil).Once()
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.Upload) bool {
		return u.Kind == entity.UploadKindActuals && u.RowCount == 2 && !u.CacheHit
	})).Return(nil).Once()

	output, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "export.csv", Data: data})

	require.NoError(t, err)
	assert.True(t, output.Loaded)
	assert.False(t, output.CacheHit)
	assert.Equal(t, 2, output.Table.PeriodCount())
	f.reader.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestUploadActualsUseCase_CacheHitSkipsReader(t *testing.T) {
	f := newFixture(0)
	data := []byte("Category,Jan,Feb")

	f.cache.On("Get", mock.Anything, session.Digest(data)).Return(sampleTable(), nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.Upload) bool { return u.CacheHit })).Return(nil)

	output, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "export.csv", Data: data})

	require.NoError(t, err)
	assert.True(t, output.CacheHit)
	f.reader.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadActualsUseCase_CacheErrorsAreNotFatal(t *testing.T) {
	f := newFixture(0)
	data := []byte("Category,Jan,Feb")

	f.cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	f.reader.On("Read", mock.Anything, mock.Anything).Return(sampleTable(), nil)
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	output, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "export.csv", Data: data})

	require.NoError(t, err)
	assert.True(t, output.Loaded)
	assert.False(t, output.CacheHit)
}

func TestUploadActualsUseCase_SameFileIsNoop(t *testing.T) {
	f := newFixture(0)
	data := []byte("Category,Jan,Feb")

	f.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	f.reader.On("Read", mock.Anything, mock.Anything).Return(sampleTable(), nil)
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	input := UploadActualsInput{SessionID: f.session.ID, FileName: "export.csv", Data: data}

	_, err := f.uc.Execute(context.Background(), input)
	require.NoError(t, err)

	again, err := f.uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, again.Loaded)

	f.reader.AssertNumberOfCalls(t, "Read", 1)
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestUploadActualsUseCase_ReplacingResetsRange(t *testing.T) {
	f := newFixture(0)
	f.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	f.reader.On("Read", mock.Anything, mock.Anything).Return(sampleTable(), nil)
	f.cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "a.csv", Data: []byte("a")})
	require.NoError(t, err)

	f.session.Lock()
	settings := f.session.Settings()
	settings.Range.Start = 1
	f.session.SetSettings(settings)
	f.session.Unlock()

	_, err = f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "b.csv", Data: []byte("b")})
	require.NoError(t, err)

	f.session.Lock()
	defer f.session.Unlock()
	assert.Equal(t, 0, f.session.Settings().Range.Start)
	assert.Equal(t, 1, f.session.Settings().Range.End)
}

func TestUploadActualsUseCase_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		maxBytes int64
		code     domainerror.IngestionErrorCode
	}{
		{name: "empty upload", fileName: "export.csv", data: nil, code: domainerror.ErrCodeMissingFile},
		{name: "too large", fileName: "export.csv", data: []byte("0123456789"), maxBytes: 4, code: domainerror.ErrCodeFileTooLarge},
		{name: "unsupported extension", fileName: "export.pdf", data: []byte("%PDF"), code: domainerror.ErrCodeUnsupportedFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.maxBytes)

			_, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: tt.fileName, Data: tt.data})

			assert.Equal(t, tt.code, ingestionCode(t, err))
			f.cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadActualsUseCase_ReaderError(t *testing.T) {
	f := newFixture(0)
	readErr := domainerror.NewIngestionError(domainerror.ErrCodeUnreadableFile, "failed to open xlsx export", errors.New("zip: not a valid zip file"))

	f.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	f.reader.On("Read", mock.Anything, mock.Anything).Return(nil, readErr)

	_, err := f.uc.Execute(context.Background(), UploadActualsInput{SessionID: f.session.ID, FileName: "export.xlsx", Data: []byte("not a zip")})

	assert.Equal(t, domainerror.ErrCodeUnreadableFile, ingestionCode(t, err))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	f.session.Lock()
	defer f.session.Unlock()
	_, ok := f.session.Actuals()
	assert.False(t, ok)
}

func TestUploadActualsUseCase_CachedContentStillNeedsSupportedName(t *testing.T) {
	manager := session.NewManager(time.Hour, nil)
	repo := new(mockUploadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	uc := NewUploadActualsUseCase(manager, spending.NewReader(), spendingcache.NewMemorySpendingCache(8), repo, 0)
	data := []byte("Category,Jan,Feb\nGroceries,-420,-380\n")

	first := manager.Create()
	output, err := uc.Execute(context.Background(), UploadActualsInput{SessionID: first.ID, FileName: "a.csv", Data: data})
	require.NoError(t, err)
	require.True(t, output.Loaded)

	tests := []struct {
		name     string
		fileName string
		wantErr  bool
	}{
		{name: "unsupported extension", fileName: "a.pdf", wantErr: true},
		{name: "no extension", fileName: "a", wantErr: true},
		{name: "supported extension hits the cache", fileName: "copy.CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second := manager.Create()

			output, err := uc.Execute(context.Background(), UploadActualsInput{SessionID: second.ID, FileName: tt.fileName, Data: data})

			second.Lock()
			_, loaded := second.Actuals()
			second.Unlock()
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrUnsupportedFileType)
				assert.Equal(t, domainerror.ErrCodeUnsupportedFileType, ingestionCode(t, err))
				assert.False(t, loaded)
				return
			}
			require.NoError(t, err)
			assert.True(t, output.CacheHit)
			assert.True(t, loaded)
		})
	}
}

func TestGetActualsUseCase(t *testing.T) {
	f := newFixture(0)
	uc := NewGetActualsUseCase(f.manager)

	_, err := uc.Execute(context.Background(), f.session.ID)
	assert.ErrorIs(t, err, domainerror.ErrActualDataNotSet)

	f.session.Lock()
	f.session.SetActuals(sampleTable(), session.FileInfo{Name: "export.csv", Digest: "abc"})
	f.session.Unlock()

	output, err := uc.Execute(context.Background(), f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, "export.csv", output.File.Name)
	assert.Len(t, output.Table.Rows, 2)
}
