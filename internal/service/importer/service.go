package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerdesk/backend/internal/model"
	"github.com/ledgerdesk/backend/internal/repository"
	"github.com/ledgerdesk/backend/internal/service/statemachine"
	"github.com/xuri/excelize/v2"
	"k8s.io/klog/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no transaction rows")
)

// 流水日期的常见写法，序列号解析失败后逐个尝试
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"2006/01/02",
}

// Service 银行流水导入：xlsx/csv 解析为交易记录
// 批次状态沿 pending -> processing -> completed/failed 迁移；
// 单行解析失败计入跳过数，不中断整个批次
type Service struct {
	repo repository.TransactionRepository
	sm   *statemachine.ImportStateMachine
}

// NewService 创建导入服务
func NewService(repo repository.TransactionRepository) *Service {
	return &Service{
		repo: repo,
		sm:   statemachine.NewImportStateMachine(),
	}
}

// Import 登记批次并解析文件内容
func (s *Service) Import(ctx context.Context, filename string, data []byte) (*model.ImportBatch, error) {
	batch := &model.ImportBatch{
		Filename: filename,
		Status:   model.ImportStatusPending,
	}
	if err := s.repo.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to create import batch: %w", err)
	}

	if err := s.transition(batch, statemachine.ImportStatusProcessing); err != nil {
		return nil, err
	}

	rows, err := parseRows(filename, data)
	if err != nil {
		return s.fail(batch, err)
	}

	transactions, skipped := s.buildTransactions(batch.ID, rows)
	if len(transactions) == 0 {
		return s.fail(batch, ErrEmptyFile)
	}
	if err := s.repo.CreateTransactions(transactions); err != nil {
		return s.fail(batch, fmt.Errorf("failed to store transactions: %w", err))
	}

	batch.RowsImported = len(transactions)
	batch.RowsSkipped = skipped
	if err := s.transition(batch, statemachine.ImportStatusCompleted); err != nil {
		return nil, err
	}
	klog.V(6).Infof("导入完成: batch=%d file=%s imported=%d skipped=%d",
		batch.ID, filename, batch.RowsImported, batch.RowsSkipped)
	return batch, nil
}

// transition 推进批次状态并持久化
func (s *Service) transition(batch *model.ImportBatch, to statemachine.ImportStatus) error {
	if err := s.sm.Transition(statemachine.ImportStatus(batch.Status), to, batch.ID); err != nil {
		return err
	}
	batch.Status = string(to)
	if err := s.repo.SaveBatch(batch); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

// fail 批次整体失败，记录原因
func (s *Service) fail(batch *model.ImportBatch, cause error) (*model.ImportBatch, error) {
	batch.ErrorMsg = cause.Error()
	if err := s.transition(batch, statemachine.ImportStatusFailed); err != nil {
		return nil, err
	}
	return batch, cause
}

// buildTransactions 把数据行转成交易记录，首行是表头时跳过
func (s *Service) buildTransactions(batchID uint, rows [][]string) ([]model.Transaction, int) {
	transactions := make([]model.Transaction, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		tx, ok := parseRow(batchID, row)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, skipped
}

// parseRows 按扩展名分派解析器
func parseRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(data)
	case ".csv":
		return parseCSV(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// parseXLSX 读首个工作表的全部行
func parseXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// looksLikeHeader 首列不是日期即视为表头
func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return true
	}
	_, ok := parseDate(row[0])
	return !ok
}

// parseRow 行格式: date, description, amount[, reference]
func parseRow(batchID uint, row []string) (model.Transaction, bool) {
	if len(row) < 3 {
		return model.Transaction{}, false
	}
	date, ok := parseDate(strings.TrimSpace(row[0]))
	if !ok {
		return model.Transaction{}, false
	}
	cents, ok := parseAmountCents(strings.TrimSpace(row[2]))
	if !ok {
		return model.Transaction{}, false
	}

	direction := model.TransactionCredit
	if cents < 0 {
		direction = model.TransactionDebit
	}
	tx := model.Transaction{
		BatchID:     batchID,
		Date:        date,
		Description: strings.TrimSpace(row[1]),
		AmountCents: cents,
		Direction:   direction,
	}
	if len(row) > 3 {
		tx.Reference = strings.TrimSpace(row[3])
	}
	return tx, true
}

// parseDate 先按 Excel 序列号解释，再逐个尝试常见日期格式
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return parsed, true
		}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// parseAmountCents 金额转分；容忍货币符号、千分位和括号负数
func parseAmountCents(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = value[1 : len(value)-1]
	}
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimPrefix(value, "$")
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		amount = -amount
	}
	cents := int64(amount*100 + 0.5)
	if amount < 0 {
		cents = int64(amount*100 - 0.5)
	}
	return cents, true
}
