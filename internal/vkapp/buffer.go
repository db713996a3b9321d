package vkapp

import (
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

// Buffer pairs a buffer with the memory bound to it.
type Buffer struct {
	Buffer core1_0.Buffer
	Memory core1_0.DeviceMemory
	Size   int
}

func (b *Buffer) Destroy() {
	if b == nil {
		return
	}

	if b.Buffer != nil {
		b.Buffer.Destroy(nil)
		b.Buffer = nil
	}

	if b.Memory != nil {
		b.Memory.Free(nil)
		b.Memory = nil
	}
}

// CreateBuffer creates a buffer of size bytes backed by memory with the
// given properties.
func (app *App) CreateBuffer(size int, usage core1_0.BufferUsageFlags, properties core1_0.MemoryPropertyFlags) (*Buffer, error) {
	buffer, _, err := app.device.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return nil, err
	}

	result := &Buffer{Buffer: buffer, Size: size}

	memRequirements := buffer.MemoryRequirements()
	memoryTypeIndex, err := app.findMemoryType(memRequirements.MemoryTypeBits, properties)
	if err != nil {
		result.Destroy()
		return nil, err
	}

	result.Memory, _, err = app.device.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		result.Destroy()
		return nil, err
	}

	_, err = buffer.BindBufferMemory(result.Memory, 0)
	if err != nil {
		result.Destroy()
		return nil, err
	}

	return result, nil
}

// Write packs data into host visible memory at offset.
func (b *Buffer) Write(offset int, data any) error {
	packed, err := vkutil.Pack(data)
	if err != nil {
		return err
	}

	return b.WriteBytes(offset, packed)
}

// WriteBytes copies raw bytes into host visible memory at offset.
func (b *Buffer) WriteBytes(offset int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if offset+len(data) > b.Size {
		return errors.Newf("write of %d bytes at offset %d overflows a %d byte buffer", len(data), offset, b.Size)
	}

	memoryPtr, _, err := b.Memory.Map(offset, len(data), 0)
	if err != nil {
		return err
	}
	defer b.Memory.Unmap()

	copy(unsafe.Slice((*byte)(memoryPtr), len(data)), data)
	return nil
}

// CreateDeviceBuffer uploads data into a new device local buffer through a
// staging buffer.
func (app *App) CreateDeviceBuffer(data any, usage core1_0.BufferUsageFlags) (*Buffer, error) {
	bufferSize := binary.Size(data)
	if bufferSize <= 0 {
		return nil, errors.Newf("cannot upload %T: not fixed-size data", data)
	}

	staging, err := app.CreateBuffer(bufferSize, core1_0.BufferUsageTransferSrc, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create staging buffer")
	}
	defer staging.Destroy()

	err = staging.Write(0, data)
	if err != nil {
		return nil, err
	}

	buffer, err := app.CreateBuffer(bufferSize, core1_0.BufferUsageTransferDst|usage, core1_0.MemoryPropertyDeviceLocal)
	if err != nil {
		return nil, err
	}

	err = app.copyBuffer(staging.Buffer, buffer.Buffer, bufferSize)
	if err != nil {
		buffer.Destroy()
		return nil, err
	}

	return buffer, nil
}

// HostBuffer is a host visible buffer that is rewritten every frame and
// grows when the data outgrows it.
type HostBuffer struct {
	app    *App
	usage  core1_0.BufferUsageFlags
	buffer *Buffer
}

func (app *App) NewHostBuffer(usage core1_0.BufferUsageFlags) *HostBuffer {
	return &HostBuffer{app: app, usage: usage}
}

// Upload replaces the contents with data. The caller must know the GPU is
// done with the previous contents, which holds for per-frame buffers once
// the frame's fence has signaled.
func (h *HostBuffer) Upload(data []byte) error {
	if h.buffer == nil || h.buffer.Size < len(data) {
		h.buffer.Destroy()
		h.buffer = nil

		buffer, err := h.app.CreateBuffer(growSize(len(data)), h.usage, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
		if err != nil {
			return err
		}
		h.buffer = buffer
	}

	return h.buffer.WriteBytes(0, data)
}

func (h *HostBuffer) Buffer() core1_0.Buffer {
	if h.buffer == nil {
		return nil
	}
	return h.buffer.Buffer
}

func (h *HostBuffer) Destroy() {
	h.buffer.Destroy()
	h.buffer = nil
}

// growSize rounds up to the next power of two, at least 64KiB, so a slowly
// growing GUI does not reallocate every frame.
func growSize(size int) int {
	grown := 64 * 1024
	for grown < size {
		grown *= 2
	}
	return grown
}

func (app *App) findMemoryType(typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	var typeFlags []core1_0.MemoryPropertyFlags
	for _, memoryType := range app.physicalDevice.MemoryProperties().MemoryTypes {
		typeFlags = append(typeFlags, memoryType.PropertyFlags)
	}

	return vkutil.FindMemoryType(typeFlags, typeFilter, properties)
}

func (app *App) beginSingleTimeCommands() (core1_0.CommandBuffer, error) {
	buffers, _, err := app.device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        app.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return nil, err
	}

	buffer := buffers[0]
	_, err = buffer.Begin(core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
	return buffer, err
}

func (app *App) endSingleTimeCommands(buffer core1_0.CommandBuffer) error {
	defer app.device.FreeCommandBuffers([]core1_0.CommandBuffer{buffer})

	_, err := buffer.End()
	if err != nil {
		return err
	}

	_, err = app.graphicsQueue.Submit(nil, []core1_0.SubmitInfo{
		{
			CommandBuffers: []core1_0.CommandBuffer{buffer},
		},
	})
	if err != nil {
		return err
	}

	_, err = app.graphicsQueue.WaitIdle()
	return err
}

func (app *App) copyBuffer(srcBuffer core1_0.Buffer, dstBuffer core1_0.Buffer, size int) error {
	buffer, err := app.beginSingleTimeCommands()
	if err != nil {
		return err
	}

	err = buffer.CmdCopyBuffer(srcBuffer, dstBuffer, []core1_0.BufferCopy{
		{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      size,
		},
	})
	if err != nil {
		return err
	}

	return app.endSingleTimeCommands(buffer)
}
